package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-field-go/surface"
)

// ebitenSurface draws onto the screen image Ebitengine hands to Draw. The
// image already has the layout size, so Resize only records it.
type ebitenSurface struct {
	target        *ebiten.Image
	width, height int
	background    surface.Color
}

var _ surface.Surface = (*ebitenSurface)(nil)

// Resize records the new size; ebiten owns the screen image.
func (s *ebitenSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Clear fills the screen with the background colour.
func (s *ebitenSurface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Fill(s.background.NRGBA())
}

// DrawDisc draws a filled circle.
func (s *ebitenSurface) DrawDisc(x, y, radius float64, c surface.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(radius), c.NRGBA(), true)
}

// DrawLine strokes an antialiased line.
func (s *ebitenSurface) DrawLine(x1, y1, x2, y2 float64, c surface.Color, width float64) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c.NRGBA(), true)
}
