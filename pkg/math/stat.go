package math

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Variance returns the population variance of the samples.
// Fewer than two samples have no defined variance and yield NaN.
func Variance(samples []float32) float32 {
	if len(samples) < 2 {
		return float32(math.NaN())
	}
	return float32(stat.PopVariance(widen(samples), nil))
}

// Mean returns the arithmetic mean of the samples, or NaN for an empty slice.
func Mean(samples []float32) float32 {
	if len(samples) == 0 {
		return float32(math.NaN())
	}
	return float32(stat.Mean(widen(samples), nil))
}

// MinMax returns the smallest and largest sample.
// An empty slice yields (+MaxFloat32, -MaxFloat32).
func MinMax(samples []float32) (lo, hi float32) {
	lo, hi = math.MaxFloat32, -math.MaxFloat32
	for _, s := range samples {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

func widen(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
