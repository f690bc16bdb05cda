package input

import (
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyID identifies a terminal key: special keys by code, printable keys by lowercase rune
type KeyID struct {
	Key  tcell.Key
	Rune rune
}

// RuneKey returns the KeyID for a printable key
func RuneKey(r rune) KeyID {
	return KeyID{Key: tcell.KeyRune, Rune: unicode.ToLower(r)}
}

// SpecialKey returns the KeyID for a non-printable key
func SpecialKey(k tcell.Key) KeyID {
	return KeyID{Key: k}
}

// KeyIDFromEvent normalizes a tcell key event
func KeyIDFromEvent(ev *tcell.EventKey) KeyID {
	if ev.Key() == tcell.KeyRune {
		return RuneKey(ev.Rune())
	}
	return SpecialKey(ev.Key())
}

// Layout binds keys to a stick and action buttons
type Layout struct {
	Name                  string
	Up, Down, Left, Right KeyID
	Buttons               [ButtonCount]KeyID
}

// HunterLayout uses WASD with the right hand on the action row
func HunterLayout() Layout {
	return Layout{
		Name:  "keyboard-hunter",
		Up:    RuneKey('w'),
		Down:  RuneKey('s'),
		Left:  RuneKey('a'),
		Right: RuneKey('d'),
		Buttons: [ButtonCount]KeyID{
			RuneKey('f'), // Action1 smell
			RuneKey('g'),
			RuneKey('r'),
			RuneKey('e'), // Action4 catch
		},
	}
}

// GhostLayout uses the arrow keys with the number row
func GhostLayout() Layout {
	return Layout{
		Name:  "keyboard-ghost",
		Up:    SpecialKey(tcell.KeyUp),
		Down:  SpecialKey(tcell.KeyDown),
		Left:  SpecialKey(tcell.KeyLeft),
		Right: SpecialKey(tcell.KeyRight),
		Buttons: [ButtonCount]KeyID{
			RuneKey('1'), // Action1 possess
			RuneKey('2'),
			RuneKey('3'), // Action3 haunt
			RuneKey('4'),
		},
	}
}

// KeyboardSource turns terminal key events into a polled Source
//
// Terminals report presses and auto-repeats but no releases, so a key counts as
// held while its last event is younger than the hold window. HandleKey may be
// called from the event goroutine; Update is called once per frame
type KeyboardSource struct {
	mu       sync.Mutex
	layout   Layout
	hold     time.Duration
	lastSeen map[KeyID]time.Time

	x, y    float64
	current [ButtonCount]bool
	prev    [ButtonCount]bool
}

// NewKeyboardSource creates a keyboard device with the given layout
func NewKeyboardSource(layout Layout, hold time.Duration) *KeyboardSource {
	return &KeyboardSource{
		layout:   layout,
		hold:     hold,
		lastSeen: make(map[KeyID]time.Time),
	}
}

// Name returns the layout name
func (k *KeyboardSource) Name() string {
	return k.layout.Name
}

// HandleKey records a key event, returns true if the key is bound by this layout
func (k *KeyboardSource) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	return k.Press(KeyIDFromEvent(ev), now)
}

// Press records a press or auto-repeat of id, returns true if the key is bound
func (k *KeyboardSource) Press(id KeyID, now time.Time) bool {
	if !k.binds(id) {
		return false
	}
	k.mu.Lock()
	k.lastSeen[id] = now
	k.mu.Unlock()
	return true
}

func (k *KeyboardSource) binds(id KeyID) bool {
	l := &k.layout
	if id == l.Up || id == l.Down || id == l.Left || id == l.Right {
		return true
	}
	for _, b := range l.Buttons {
		if id == b {
			return true
		}
	}
	return false
}

// Update samples held keys for a new frame
func (k *KeyboardSource) Update(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := func(id KeyID) bool {
		t, ok := k.lastSeen[id]
		return ok && now.Sub(t) <= k.hold
	}
	axis := func(neg, pos KeyID) float64 {
		var v float64
		if held(neg) {
			v--
		}
		if held(pos) {
			v++
		}
		return v
	}

	k.x = axis(k.layout.Left, k.layout.Right)
	k.y = axis(k.layout.Down, k.layout.Up)

	k.prev = k.current
	for b := Button(0); b < ButtonCount; b++ {
		k.current[b] = held(k.layout.Buttons[b])
	}
}

// Stick implements Source
func (k *KeyboardSource) Stick() (float64, float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.x, k.y
}

// IsPressed implements Source
func (k *KeyboardSource) IsPressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current[b]
}

// WasPressed implements Source
func (k *KeyboardSource) WasPressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current[b] && !k.prev[b]
}

// AnyButton reports a rising edge on any button in the current frame
func (k *KeyboardSource) AnyButton() bool {
	for b := Button(0); b < ButtonCount; b++ {
		if k.WasPressed(b) {
			return true
		}
	}
	return false
}
