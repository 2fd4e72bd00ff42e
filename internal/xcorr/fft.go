package xcorr

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-coloc/radial"
)

// newPlans creates one plan per distinct axis length.
func newPlans(dims []int) (map[int]*algofft.Plan[complex128], error) {
	plans := make(map[int]*algofft.Plan[complex128], len(dims))

	for _, n := range dims {
		if _, ok := plans[n]; ok || n == 1 {
			continue
		}

		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
		}

		plans[n] = plan
	}

	return plans, nil
}

// embed zero-pads img into a complex buffer with the given extents.
func embed(img *radial.Image, padded []int) []complex128 {
	size := 1
	for _, d := range padded {
		size *= d
	}

	buf := make([]complex128, size)
	pos := make([]int, len(img.Dims))

	for off, v := range img.Pix {
		img.Position(off, pos)

		dst, stride := 0, 1
		for i, p := range pos {
			dst += p * stride
			stride *= padded[i]
		}

		buf[dst] = complex(v, 0)
	}

	return buf
}

// transform applies a separable N-D FFT in place, one axis at a time.
func transform(buf []complex128, dims []int, plans map[int]*algofft.Plan[complex128], forward bool) error {
	stride := 1

	for axis, n := range dims {
		if n == 1 {
			continue
		}

		plan := plans[n]
		line := make([]complex128, n)
		out := make([]complex128, n)
		block := stride * n

		for base := 0; base < len(buf); base += block {
			for inner := range stride {
				start := base + inner
				for k := range n {
					line[k] = buf[start+k*stride]
				}

				var err error
				if forward {
					err = plan.Forward(out, line)
				} else {
					err = plan.Inverse(out, line)
				}

				if err != nil {
					return fmt.Errorf("xcorr: FFT along axis %d failed: %w", axis, err)
				}

				for k := range n {
					buf[start+k*stride] = out[k]
				}
			}
		}

		stride = block
	}

	return nil
}
