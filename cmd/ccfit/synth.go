package main

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-coloc/radial"
)

// synthesize renders two channels of N-D spots. The second channel holds
// the same spots moved by -shift pixels along axis 0. Both get independent
// uniform noise.
func synthesize(dims []int, spots int, sigma, shift, noise float64, seed int64) (a, b *radial.Image, err error) {
	if a, err = radial.NewImage(dims...); err != nil {
		return nil, nil, err
	}

	b, _ = radial.NewImage(dims...)
	rng := rand.New(rand.NewSource(seed))

	centers := make([][]float64, spots)
	for i := range centers {
		c := make([]float64, len(dims))
		for k, d := range dims {
			c[k] = rng.Float64() * float64(d-1)
		}

		centers[i] = c
	}

	pos := make([]int, len(dims))
	inv := 1 / (2 * sigma * sigma)

	for off := range a.Pix {
		a.Position(off, pos)

		var va, vb float64
		for _, c := range centers {
			var da, db float64
			for k, p := range pos {
				d := float64(p) - c[k]
				da += d * d

				if k == 0 {
					d += shift
				}

				db += d * d
			}

			va += math.Exp(-da * inv)
			vb += math.Exp(-db * inv)
		}

		a.Pix[off] = va + noise*(2*rng.Float64()-1)
		b.Pix[off] = vb + noise*(2*rng.Float64()-1)
	}

	return a, b, nil
}
