package sim

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-field-go/surface"
)

// Variant selects per-particle behaviour.
type Variant uint8

const (
	Normal  Variant = iota
	Twinkle         // opacity wanders randomly each frame
)

func (v Variant) String() string {
	if v == Twinkle {
		return "twinkle"
	}
	return "normal"
}

// Particle is a single point of the field. Size is fixed at spawn; the
// behavioural parameters are drawn from the profile ranges at spawn.
type Particle struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Size     float64
	Opacity  float64
	Variant  Variant
	MaxSpeed float64
	Friction float64
	Phase    float64
}

func (p *Particle) finite() bool {
	for _, v := range [...]float64{p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.Opacity, p.Phase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// env is the per-tick simulation context handed to particle updates.
type env struct {
	profile       *Profile
	width, height float64
	pointer       r2.Vec
	rng           *rand.Rand
	flow          *flowField
}

// spawn reinitialises p as a freshly created particle.
func (e *env) spawn(p *Particle) {
	prof := e.profile
	raw := r2.Vec{X: e.rng.Float64() * e.width, Y: e.rng.Float64() * e.height}

	variant := Normal
	opacity := prof.Opacity
	if e.rng.Float64() < prof.TwinkleChance {
		variant = Twinkle
		opacity = prof.TwinkleOpacity
	}

	*p = Particle{
		Pos: spawnPoint(raw, e.pointer, prof.SpawnClearance, e.width, e.height),
		Vel: r2.Vec{
			X: (e.rng.Float64() - 0.5) * prof.InitialSpeed,
			Y: (e.rng.Float64() - 0.5) * prof.InitialSpeed,
		},
		Size:     prof.Size.pick(e.rng),
		Opacity:  opacity.pick(e.rng),
		Variant:  variant,
		MaxSpeed: prof.MaxSpeed.pick(e.rng),
		Friction: prof.Friction.pick(e.rng),
		Phase:    e.rng.Float64() * 2 * math.Pi,
	}
	p.clampSpeed()
}

// clampSpeed scales Vel down to MaxSpeed keeping its direction.
func (p *Particle) clampSpeed() {
	if speed := r2.Norm(p.Vel); speed > p.MaxSpeed {
		p.Vel = r2.Scale(p.MaxSpeed/speed, p.Vel)
	}
}

// spawnPoint moves a raw spawn position that falls within clearance of the
// pointer to the opposite quadrant. The reflection is applied once and can
// land inside the clearance again when the pointer sits near the quarter
// lines of the surface.
func spawnPoint(raw, pointer r2.Vec, clearance, width, height float64) r2.Vec {
	if clearance <= 0 || r2.Norm(r2.Sub(raw, pointer)) >= clearance {
		return raw
	}
	return r2.Vec{
		X: wrap(raw.X+width/2, width),
		Y: wrap(raw.Y+height/2, height),
	}
}

// update advances p by one frame and reports whether it collapsed onto the
// pointer and was respawned.
func (e *env) update(p *Particle) bool {
	prof := e.profile

	p.Pos = r2.Add(p.Pos, p.Vel)

	d := r2.Sub(e.pointer, p.Pos)
	dist := r2.Norm(d)
	if dist > 0 && dist < prof.AttractRadius {
		f := d
		if prof.Swirl.Enabled {
			swirl := r2.Vec{X: math.Cos(p.Phase), Y: math.Sin(p.Phase)}
			f = r2.Add(f, r2.Scale(prof.Swirl.Gain, swirl))
			p.Phase += prof.Swirl.PhaseStep
		}
		k := (prof.AttractRadius - dist) / prof.AttractRadius * prof.AttractGain
		p.Vel = r2.Add(p.Vel, r2.Scale(k, f))
	}

	if e.flow != nil {
		p.Vel = r2.Add(p.Vel, e.flow.force(p.Pos))
	}

	if prof.CollapseRadius > 0 && dist < prof.CollapseRadius {
		e.spawn(p)
		return true
	}

	p.clampSpeed()
	p.Vel = r2.Scale(p.Friction, p.Vel)

	p.Pos.X = wrap(p.Pos.X, e.width)
	p.Pos.Y = wrap(p.Pos.Y, e.height)

	bounds := prof.Opacity
	if p.Variant == Twinkle {
		p.Opacity += (e.rng.Float64() - 0.5) * prof.TwinkleStep
		bounds = prof.TwinkleOpacity
	}
	p.Opacity = bounds.clamp(p.Opacity)
	return false
}

func (p *Particle) draw(s surface.Surface, c surface.Color) {
	s.DrawDisc(p.Pos.X, p.Pos.Y, p.Size, c.WithAlpha(p.Opacity))
}

// wrap maps v into [0,size) toroidally.
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		// -tiny + size rounds up to size
		v = 0
	}
	return v
}
