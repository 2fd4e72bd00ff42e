package coloc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-coloc/gauss"
	"github.com/cwbudde/algo-coloc/profile"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics holds the goodness-of-fit and significance figures of a fit.
type Statistics struct {
	// RSquared is computed on the subtracted profile within three sigma of
	// the first component. NaN when the window is degenerate.
	RSquared float64

	// Confidence holds one ratio per component, or nil when no original
	// profile was supplied. NaN where the original area is zero.
	Confidence []float64
}

// HasConfidence reports whether per-component confidence is available.
func (s Statistics) HasConfidence() bool { return s.Confidence != nil }

// MaxConfidence returns the largest finite confidence, or NaN if none.
func (s Statistics) MaxConfidence() float64 {
	best := math.NaN()
	for _, c := range s.Confidence {
		if math.IsNaN(c) {
			continue
		}

		if math.IsNaN(best) || c > best {
			best = c
		}
	}

	return best
}

func window(t gauss.Triplet) (lo, hi float64) {
	return t.Mean - 3*t.Sigma, t.Mean + 3*t.Sigma
}

// RSquared returns 1 - SSres/SStot of m against p over the closed window
// [mean₀-3σ₀, mean₀+3σ₀] of the first component. An empty or zero-variance
// window yields NaN and [ErrDegenerateStatistics].
func RSquared(p *profile.Profile, m *gauss.Mixture) (float64, error) {
	lo, hi := window(m.Component(0))

	keys, observed := p.Window(lo, hi)
	if len(observed) == 0 {
		return math.NaN(), fmt.Errorf("%w: no samples in [%g, %g]", ErrDegenerateStatistics, lo, hi)
	}

	dev := make([]float64, len(observed))
	copy(dev, observed)
	floats.AddConst(-stat.Mean(observed, nil), dev)

	if floats.Dot(dev, dev) == 0 {
		return math.NaN(), fmt.Errorf("%w: %d samples in [%g, %g]", ErrDegenerateStatistics, len(observed), lo, hi)
	}

	model := make([]float64, len(keys))
	for i, k := range keys {
		model[i] = m.Value(k)
	}

	return stat.RSquaredFrom(model, observed, nil), nil
}

// AreaUnderCurve sums the samples of p whose distance lies in
// [mean-3σ, mean+3σ]. It is a left-Riemann style sum over sample points,
// not an integral.
func AreaUnderCurve(p *profile.Profile, t gauss.Triplet) float64 {
	_, values := p.Window(window(t))

	return floats.Sum(values)
}

// Confidence returns, per component, the subtracted area over the original
// area inside that component's three-sigma window.
func Confidence(sub, orig *profile.Profile, ts []gauss.Triplet) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		den := AreaUnderCurve(orig, t)
		if den == 0 {
			out[i] = math.NaN()
			continue
		}

		out[i] = AreaUnderCurve(sub, t) / den
	}

	return out
}
