package fit

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-coloc/gauss"
)

// fwhmToSigma converts a full width at half maximum into a Gaussian sigma.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// Guess estimates starting parameters for count components. Components are
// peeled off one at a time: the largest remaining residual gives amplitude
// and mean, its half-maximum width gives sigma, and the resulting curve is
// subtracted before estimating the next component.
func Guess(points []Point, count int) []gauss.Triplet {
	out := make([]gauss.Triplet, 0, count)
	if len(points) == 0 {
		for range count {
			out = append(out, gauss.Triplet{Amplitude: 1, Sigma: 1})
		}

		return out
	}

	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	xs := make([]float64, len(sorted))
	resid := make([]float64, len(sorted))
	peak := math.Inf(-1)

	for i, p := range sorted {
		xs[i] = p.X
		resid[i] = p.Y
		peak = math.Max(peak, math.Abs(p.Y))
	}

	span := xs[len(xs)-1] - xs[0]
	if span <= 0 {
		span = 1
	}

	for k := range count {
		idx := argmax(resid)
		t := gauss.Triplet{
			Amplitude: resid[idx],
			Mean:      xs[idx],
			Sigma:     halfMaxSigma(xs, resid, idx),
		}

		if !(t.Amplitude > 0) || !(t.Sigma > 0) {
			t = fallbackGuess(out, peak, span, k)
		}

		out = append(out, t)

		for i, x := range xs {
			resid[i] -= t.Value(x)
		}
	}

	return out
}

func argmax(v []float64) int {
	idx := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[idx] {
			idx = i
		}
	}

	return idx
}

// halfMaxSigma walks outwards from idx until the residual drops to half
// of its peak value and linearly interpolates both crossings.
func halfMaxSigma(xs, r []float64, idx int) float64 {
	half := r[idx] / 2

	lo := idx
	for lo > 0 && r[lo-1] > half {
		lo--
	}

	xl := xs[lo]
	if lo > 0 {
		xl = xs[lo-1] + (half-r[lo-1])*(xs[lo]-xs[lo-1])/(r[lo]-r[lo-1])
	}

	hi := idx
	for hi < len(r)-1 && r[hi+1] > half {
		hi++
	}

	xr := xs[hi]
	if hi < len(r)-1 {
		xr = xs[hi] + (r[hi]-half)*(xs[hi+1]-xs[hi])/(r[hi]-r[hi+1])
	}

	return (xr - xl) * fwhmToSigma
}

func fallbackGuess(prev []gauss.Triplet, peak, span float64, k int) gauss.Triplet {
	amp := peak / math.Pow(2, float64(k+1))
	if !(amp > 0) {
		amp = 1
	}

	if len(prev) == 0 {
		return gauss.Triplet{Amplitude: amp, Mean: 0, Sigma: span / 10}
	}

	last := prev[len(prev)-1]

	return gauss.Triplet{Amplitude: amp, Mean: last.Mean + last.Sigma, Sigma: last.Sigma}
}
