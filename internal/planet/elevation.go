package planet

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	m "github.com/jostly/terragen/pkg/math"
)

// Elevation field parameters.
const (
	elevationFrequency = 2.0
	elevationAmplitude = 300.0
)

// RidgedMulti is a ridged multifractal over 3D OpenSimplex noise: sharp
// crests where the base noise crosses zero, with each octave weighted by the
// strength of the previous one.
type RidgedMulti struct {
	Octaves    int
	Frequency  float64
	Lacunarity float64
	Gain       float64
	Offset     float64

	noise   opensimplex.Noise
	weights []float64
}

// NewRidgedMulti returns a six-octave ridged multifractal seeded with seed.
func NewRidgedMulti(seed int64) *RidgedMulti {
	r := &RidgedMulti{
		Octaves:    6,
		Frequency:  elevationFrequency,
		Lacunarity: 2,
		Gain:       2,
		Offset:     1,
		noise:      opensimplex.New(seed),
	}
	r.weights = make([]float64, r.Octaves)
	f := 1.0
	for i := range r.weights {
		r.weights[i] = 1 / f
		f *= r.Lacunarity
	}
	return r
}

// Eval samples the field at p. Results fall roughly in [-1, 1.5].
func (r *RidgedMulti) Eval(p m.Vec3) float64 {
	x := float64(p.X) * r.Frequency
	y := float64(p.Y) * r.Frequency
	z := float64(p.Z) * r.Frequency

	value, weight := 0.0, 1.0
	for i := range r.Octaves {
		signal := r.Offset - math.Abs(r.noise.Eval3(x, y, z))
		signal *= signal * weight

		weight = math.Max(0, math.Min(1, signal*r.Gain))
		value += signal * r.weights[i]

		x *= r.Lacunarity
		y *= r.Lacunarity
		z *= r.Lacunarity
	}
	return value*1.25 - 1
}

// elevationField samples the noise at every corner vertex.
func elevationField(noise *RidgedMulti, corners []m.Vec3) []float32 {
	out := make([]float32, len(corners))
	for i, c := range corners {
		out[i] = float32(noise.Eval(c) * elevationAmplitude)
	}
	return out
}
