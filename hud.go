package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// drawHUD prints the last tick's counters in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.driver.Stats()
	state := "running"
	if st.Paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("profile %s (%s)  particles %d  lines %d  respawns %d",
			st.Profile, state, st.Particles, st.Edges, st.Respawns),
		fmt.Sprintf("TPS %0.1f  FPS %0.1f  frame %d", ebiten.ActualTPS(), ebiten.ActualFPS(), st.Frame),
		"P: next profile  L: reload config  Space: pause  H: hide",
	}

	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(screen, line, face, 10, 20+i*18, color.White)
	}
}
