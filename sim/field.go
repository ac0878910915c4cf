// Package sim is the particle field simulation: particles drifting over a
// toroidal surface, attracted by the pointer, joined by proximity lines and
// scattered by pointer presses.
package sim

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-field-go/surface"
)

// Field owns a fixed-count set of particles, advances them each frame and
// draws them together with their proximity lines.
type Field struct {
	profile       Profile
	particles     []Particle
	width, height float64
	rng           *rand.Rand
	flow          *flowField
	grid          grid
	logger        *log.Logger
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source used for spawning and twinkling.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithLogger sets where particle faults are reported.
func WithLogger(l *log.Logger) Option {
	return func(f *Field) { f.logger = l }
}

// NewField creates a field of profile.Count particles spread over a
// width x height surface, keeping the spawn clearance around pointer.
func NewField(profile Profile, width, height float64, pointer r2.Vec, opts ...Option) (*Field, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	f.reset(profile, pointer)
	return f, nil
}

// SetProfile replaces the profile and respawns every particle.
func (f *Field) SetProfile(profile Profile, pointer r2.Vec) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("set profile %q: %w", profile.Name, err)
	}
	f.reset(profile, pointer)
	return nil
}

func (f *Field) reset(profile Profile, pointer r2.Vec) {
	f.profile = profile
	f.flow = newFlowField(profile.Drift, f.rng)
	f.particles = make([]Particle, profile.Count)
	e := f.env(pointer)
	for i := range f.particles {
		e.spawn(&f.particles[i])
	}
}

// Profile returns the active profile.
func (f *Field) Profile() Profile {
	return f.profile
}

// Particles exposes the particle slice. Callers must not retain it across ticks.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Size returns the wrap bounds.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Resize changes the wrap bounds and brings every particle back inside them.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos.X = wrap(p.Pos.X, width)
		p.Pos.Y = wrap(p.Pos.Y, height)
	}
}

func (f *Field) env(pointer r2.Vec) *env {
	return &env{
		profile: &f.profile,
		width:   f.width,
		height:  f.height,
		pointer: pointer,
		rng:     f.rng,
		flow:    f.flow,
	}
}

// Update advances every particle one frame toward pointer and returns how
// many were respawned. A particle whose update panics or produces a
// non-finite state is logged and respawned; the others are unaffected.
func (f *Field) Update(pointer r2.Vec) int {
	e := f.env(pointer)
	respawns := 0
	for i := range f.particles {
		if f.updateParticle(e, i) {
			respawns++
		}
	}
	if f.flow != nil {
		f.flow.advance()
	}
	return respawns
}

func (f *Field) updateParticle(e *env, i int) (respawned bool) {
	p := &f.particles[i]
	defer func() {
		if r := recover(); r != nil {
			f.logger.Printf("particle %d: update panicked: %v; respawning", i, r)
			e.spawn(p)
			respawned = true
		}
	}()

	respawned = e.update(p)
	if !p.finite() {
		f.logger.Printf("particle %d: non-finite state pos=%v vel=%v; respawning", i, p.Pos, p.Vel)
		e.spawn(p)
		respawned = true
	}
	return respawned
}

// Burst pushes every particle radially away from origin with the profile's
// impulse strength.
func (f *Field) Burst(origin r2.Vec) {
	Impulse(f.particles, origin, f.profile.ImpulseStrength)
}

// Edges calls fn once for every unordered pair closer than MaxDistance.
func (f *Field) Edges(fn func(Edge)) {
	if f.profile.GridThreshold > 0 && len(f.particles) >= f.profile.GridThreshold {
		f.grid.edges(f.particles, f.profile.MaxDistance, fn)
		return
	}
	bruteForceEdges(f.particles, f.profile.MaxDistance, fn)
}

// Render draws every particle, then every proximity line, and returns the
// number of lines drawn.
func (f *Field) Render(s surface.Surface) int {
	c := f.profile.Color
	for i := range f.particles {
		f.particles[i].draw(s, c)
	}

	edges := 0
	f.Edges(func(e Edge) {
		a, b := f.particles[e.I].Pos, f.particles[e.J].Pos
		s.DrawLine(a.X, a.Y, b.X, b.Y, c.WithAlpha(e.Alpha), f.profile.LineWidth)
		edges++
	})
	return edges
}
