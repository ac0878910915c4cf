package sim

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"
)

// flowField turns 3D perlin noise (x, y, time) into a unit direction per
// position, scaled by the drift gain.
type flowField struct {
	noise *perlin.Perlin
	cfg   Drift
	t     float64
}

func newFlowField(cfg Drift, rng *rand.Rand) *flowField {
	if cfg.Gain <= 0 {
		return nil
	}
	return &flowField{
		noise: perlin.NewPerlin(2, 2, 3, rng.Int63()),
		cfg:   cfg,
	}
}

func (f *flowField) force(pos r2.Vec) r2.Vec {
	n := f.noise.Noise3D(pos.X*f.cfg.Scale, pos.Y*f.cfg.Scale, f.t)
	angle := (n + 1) * math.Pi
	return r2.Vec{X: math.Cos(angle) * f.cfg.Gain, Y: math.Sin(angle) * f.cfg.Gain}
}

func (f *flowField) advance() {
	f.t += f.cfg.TimeStep
}
