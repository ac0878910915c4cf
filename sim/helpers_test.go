package sim

import (
	"io"
	"log"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestField(t *testing.T, p Profile, width, height float64, seed int64) *Field {
	t.Helper()
	f, err := NewField(p, width, height, r2.Vec{X: width / 2, Y: height / 2},
		WithRand(rand.New(rand.NewSource(seed))), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

// place replaces the field's particles with still, opaque particles at the
// given positions.
func place(f *Field, positions ...r2.Vec) {
	f.particles = make([]Particle, len(positions))
	for i, pos := range positions {
		f.particles[i] = Particle{
			Pos:      pos,
			Size:     2,
			Opacity:  0.5,
			MaxSpeed: 100,
			Friction: 1,
		}
	}
}

func testEnv(p *Profile, width, height float64, pointer r2.Vec) *env {
	return &env{
		profile: p,
		width:   width,
		height:  height,
		pointer: pointer,
		rng:     rand.New(rand.NewSource(7)),
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
