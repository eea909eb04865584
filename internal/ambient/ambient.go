// Package ambient generates the decorative background particles.
package ambient

import "math/rand/v2"

// DefaultCount is the number of particles on the page.
const DefaultCount = 40

// Particle is one floating dot. X and Y are percentages of the viewport,
// Size is in pixels, Duration and Delay in seconds.
type Particle struct {
	ID       int
	X        float64
	Y        float64
	Size     float64
	Duration float64
	Delay    float64
}

// Particles places n particles at random. A nil rng uses the global source.
func Particles(rng *rand.Rand, n int) []Particle {
	if n <= 0 {
		return nil
	}
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			ID:       i,
			X:        f() * 100,
			Y:        f() * 100,
			Size:     f()*4 + 2,
			Duration: f()*15 + 10,
			Delay:    f() * 3,
		}
	}
	return out
}
