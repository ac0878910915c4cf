package sim

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-field-go/surface"
)

// Follower is the custom cursor: a dot pinned to the pointer and an outline
// ring that eases after it on a spring. A press shrinks the ring to half size
// and it springs back.
//
// A nil *Follower is valid and does nothing, so hosts without a cursor keep
// the frame loop unchanged.
type Follower struct {
	DotRadius     float64
	OutlineRadius float64
	Color         surface.Color

	move  harmonica.Spring
	pulse harmonica.Spring

	dot        r2.Vec
	outline    r2.Vec
	outlineVel r2.Vec
	scale      float64
	scaleVel   float64
	started    bool
}

const (
	followerFrequency = 10.0 // critically damped, settles in about half a second
	pulseFrequency    = 18.0
	pulseDamping      = 0.5
	pressScale        = 0.5
	outlineSegments   = 32
)

// NewFollower creates a follower stepped fps times per second.
func NewFollower(fps int, c surface.Color) *Follower {
	if fps <= 0 {
		fps = 60
	}
	return &Follower{
		DotRadius:     4,
		OutlineRadius: 20,
		Color:         c,
		move:          harmonica.NewSpring(harmonica.FPS(fps), followerFrequency, 1),
		pulse:         harmonica.NewSpring(harmonica.FPS(fps), pulseFrequency, pulseDamping),
		scale:         1,
	}
}

// Update moves the dot to target and steps both springs.
func (f *Follower) Update(target r2.Vec) {
	if f == nil {
		return
	}
	f.dot = target
	if !f.started {
		f.outline = target
		f.started = true
	}
	f.outline.X, f.outlineVel.X = f.move.Update(f.outline.X, f.outlineVel.X, target.X)
	f.outline.Y, f.outlineVel.Y = f.move.Update(f.outline.Y, f.outlineVel.Y, target.Y)
	f.scale, f.scaleVel = f.pulse.Update(f.scale, f.scaleVel, 1)
}

// Press starts the press pulse.
func (f *Follower) Press() {
	if f == nil {
		return
	}
	f.scale = pressScale
	f.scaleVel = 0
}

// Outline returns the current ring centre.
func (f *Follower) Outline() r2.Vec {
	if f == nil {
		return r2.Vec{}
	}
	return f.outline
}

// Scale returns the current ring scale; 1 at rest.
func (f *Follower) Scale() float64 {
	if f == nil {
		return 1
	}
	return f.scale
}

// Draw paints the dot and the ring.
func (f *Follower) Draw(s surface.Surface) {
	if f == nil || !f.started {
		return
	}
	s.DrawDisc(f.dot.X, f.dot.Y, f.DotRadius, f.Color)

	r := f.OutlineRadius * f.scale
	ring := f.Color.WithAlpha(0.6)
	prev := r2.Vec{X: f.outline.X + r, Y: f.outline.Y}
	for i := 1; i <= outlineSegments; i++ {
		a := 2 * math.Pi * float64(i) / outlineSegments
		next := r2.Vec{X: f.outline.X + r*math.Cos(a), Y: f.outline.Y + r*math.Sin(a)}
		s.DrawLine(prev.X, prev.Y, next.X, next.Y, ring, 1.5)
		prev = next
	}
}
