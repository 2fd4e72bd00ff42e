package profile

import "fmt"

// Smooth returns a moving-average copy of p over ordinal positions. The
// value at position i becomes the mean of positions [i-radius, i+radius],
// clamped to the profile bounds, so edge samples average fewer neighbors.
// The window counts samples, not distance. A radius of 0 returns a profile
// equal to p.
func Smooth(p *Profile, radius int) (*Profile, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}

	n := len(p.values)
	out := &Profile{
		keys:   append([]float64(nil), p.keys...),
		values: make([]float64, n),
	}

	if radius == 0 {
		copy(out.values, p.values)
		return out, nil
	}

	for i := range n {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += p.values[j]
		}

		out.values[i] = sum / float64(hi-lo+1)
	}

	return out, nil
}
