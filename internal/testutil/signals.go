package testutil

import (
	"math"
	"math/rand"
)

// Grid returns n evenly spaced distances starting at start.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

// GaussianSamples evaluates a sum of Gaussians at every key. params holds
// (amplitude, mean, sigma) triplets.
func GaussianSamples(keys []float64, params ...float64) []float64 {
	out := make([]float64, len(keys))
	for i, x := range keys {
		for j := 0; j+2 < len(params); j += 3 {
			d := x - params[j+1]
			out[i] += params[j] * math.Exp(-d*d/(2*params[j+2]*params[j+2]))
		}
	}

	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Spike returns zeros with height at pos.
func Spike(length, pos int, height float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = height
	}

	return out
}

// Constant returns a flat profile of the given length.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// GaussianBlob fills an N-D image (axis 0 fastest) with an isotropic
// Gaussian of the given amplitude and pixel sigma centered at center.
func GaussianBlob(dims []int, center []float64, amplitude, sigma float64) []float64 {
	n := 1
	for _, d := range dims {
		n *= d
	}

	out := make([]float64, n)
	pos := make([]int, len(dims))

	for off := range out {
		rem := off
		var sq float64

		for i, d := range dims {
			pos[i] = rem % d
			rem /= d
			dx := float64(pos[i]) - center[i]
			sq += dx * dx
		}

		out[off] = amplitude * math.Exp(-sq/(2*sigma*sigma))
	}

	return out
}
