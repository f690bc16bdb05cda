package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidCast is returned for a cast without exactly one hunter and one possessed body
var ErrInvalidCast = errors.New("game: invalid cast")

// Spawn places one actor at world start
type Spawn struct {
	Name      string
	Pos       mgl64.Vec3
	Hunter    bool
	Possessed bool
}

// DefaultCast is the hunter and four mansion staff, the butler starting under ghost control
func DefaultCast() []Spawn {
	return []Spawn{
		{Name: "hunter", Pos: mgl64.Vec3{10, 0, 12}, Hunter: true},
		{Name: "butler", Pos: mgl64.Vec3{30, 0, 6}, Possessed: true},
		{Name: "maid", Pos: mgl64.Vec3{30, 0, 18}},
		{Name: "cook", Pos: mgl64.Vec3{50, 0, 6}},
		{Name: "gardener", Pos: mgl64.Vec3{50, 0, 18}},
	}
}

func validateCast(cast []Spawn) error {
	var errs []error
	names := make(map[string]bool, len(cast))
	hunters, possessed := 0, 0
	for _, s := range cast {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%w: unnamed actor", ErrInvalidCast))
		} else if names[s.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate actor %q", ErrInvalidCast, s.Name))
		}
		names[s.Name] = true
		if s.Hunter {
			hunters++
		}
		if s.Possessed {
			possessed++
		}
	}
	if hunters != 1 {
		errs = append(errs, fmt.Errorf("%w: %d hunters", ErrInvalidCast, hunters))
	}
	if possessed != 1 {
		errs = append(errs, fmt.Errorf("%w: %d possessed bodies", ErrInvalidCast, possessed))
	}
	return errors.Join(errs...)
}
