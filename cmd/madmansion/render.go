package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/actor"
	"github.com/lixenwraith/mad-mansion/game"
)

const hudRows = 3

var (
	styleDefault  = tcell.StyleDefault
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHunter   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNPC      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleScared   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleConfused = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleMarker   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHaunted  = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 0, 40))
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// view draws the arena top-down: world X to the right, world Z up
type view struct {
	screen tcell.Screen
	world  *game.World
}

func newView(screen tcell.Screen, w *game.World) *view {
	return &view{screen: screen, world: w}
}

func (v *view) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	arenaH := height - hudRows
	if width < 10 || arenaH < 5 {
		v.text(0, 0, "terminal too small", styleDefault)
		v.screen.Show()
		return
	}

	v.drawRooms(width, arenaH)
	for _, a := range v.world.Actors() {
		v.drawActor(a, width, arenaH)
	}
	v.drawHUD(arenaH)
	v.screen.Show()
}

// cell maps a world position to a screen cell inside the arena box
func (v *view) cell(x, z float64, width, arenaH int) (int, int) {
	cfg := v.world.Config().Sim
	cx := 1 + int(math.Round(x/cfg.ArenaWidth*float64(width-3)))
	cy := 1 + int(math.Round((1-z/cfg.ArenaDepth)*float64(arenaH-3)))
	return cx, cy
}

func (v *view) drawRooms(width, arenaH int) {
	rooms := v.world.Rooms()
	haunting, hauntRoom := v.world.Director().Haunting()

	if haunting {
		for y := 1; y < arenaH-1; y++ {
			for x := 1; x < width-1; x++ {
				wx := float64(x-1) / float64(width-3) * rooms.Width
				wz := (1 - float64(y-1)/float64(arenaH-3)) * rooms.Depth
				if rooms.RoomAt(mgl64.Vec3{wx, 0, wz}) == hauntRoom {
					v.screen.SetContent(x, y, ' ', nil, styleHaunted)
				}
			}
		}
	}

	for x := 0; x < width; x++ {
		v.screen.SetContent(x, 0, '─', nil, styleWall)
		v.screen.SetContent(x, arenaH-1, '─', nil, styleWall)
	}
	for y := 0; y < arenaH; y++ {
		v.screen.SetContent(0, y, '│', nil, styleWall)
		v.screen.SetContent(width-1, y, '│', nil, styleWall)
	}

	for c := 1; c < rooms.Cols; c++ {
		x, _ := v.cell(float64(c)*rooms.Width/float64(rooms.Cols), 0, width, arenaH)
		for y := 1; y < arenaH-1; y++ {
			v.screen.SetContent(x, y, '┆', nil, styleWall)
		}
	}
	for r := 1; r < rooms.Rows; r++ {
		_, y := v.cell(0, float64(r)*rooms.Depth/float64(rooms.Rows), width, arenaH)
		for x := 1; x < width-1; x++ {
			v.screen.SetContent(x, y, '┄', nil, styleWall)
		}
	}
}

func (v *view) drawActor(a *actor.Actor, width, arenaH int) {
	pos := a.Position()
	x, y := v.cell(pos.X(), pos.Z(), width, arenaH)

	glyph := []rune(strings.ToUpper(a.Name()))[0]
	style := styleNPC
	switch {
	case a.Behavior().IsConfused():
		style = styleConfused
	case a.Behavior().IsScared():
		style = styleScared
	case a.IsHunter():
		style = styleHunter
	}
	v.screen.SetContent(x, y, glyph, nil, style)

	// Marker rest height is drawn one row up; the forward offset moves it across the floor
	if m := a.Reveal().Marker(); m.Visible {
		mp := a.Reveal().MarkerPosition()
		mx, my := v.cell(mp.X(), mp.Z(), width, arenaH)
		v.screen.SetContent(mx, my-1, '▼', nil, styleMarker)
	}
}

func (v *view) drawHUD(top int) {
	w := v.world
	hunterSmell := "-"
	if h := w.Hunter(); h != nil && h.Proximity().Playing() {
		hunterSmell = fmt.Sprintf("%3.0f%%", h.Proximity().Volume()*100)
	}
	status := "playing"
	switch {
	case w.Director().Ended():
		status = "GHOST CAUGHT"
	case !w.Director().Started():
		status = "waiting for players"
	case w.Clock().IsPaused():
		status = "paused"
	}

	v.text(0, top, fmt.Sprintf("%s | assign: %s | revealed %3.0f%% | smell %s | stings %d",
		status, w.Assigner().Status(), w.Director().RevealedPercentage()*100, hunterSmell, w.Audio().Stings()), styleHUD)
	v.text(0, top+1, "hunter: WASD move, F smell, E catch | ghost: arrows move, 1 possess, 3 haunt", styleDefault)
	v.text(0, top+2, "press any action key to join (hunter first) | F1 reassign | Esc quit", styleDefault)
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
