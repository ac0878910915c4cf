package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Impulse adds a velocity kick of the given strength to every particle,
// directed from origin toward the particle. A particle sitting exactly on
// origin has no direction and is left alone.
func Impulse(particles []Particle, origin r2.Vec, strength float64) {
	for i := range particles {
		p := &particles[i]
		dx := p.Pos.X - origin.X
		dy := p.Pos.Y - origin.Y
		if dx == 0 && dy == 0 {
			continue
		}
		angle := math.Atan2(dy, dx)
		p.Vel.X += math.Cos(angle) * strength
		p.Vel.Y += math.Sin(angle) * strength
	}
}
