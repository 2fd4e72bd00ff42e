package coloc

import (
	"github.com/cwbudde/algo-coloc/fit"
	"github.com/cwbudde/algo-coloc/profile"
)

// PeakLocation returns the distance of the first maximum of p. A peak at the
// smallest distance is reported as 0, since the underlying distribution may
// be centered at or below zero.
func PeakLocation(p *profile.Profile) float64 {
	key, _ := p.Peak()
	if key == p.FirstKey() {
		return 0
	}

	return key
}

// WorkingPoints returns every sample of p plus a copy reflected through the
// peak, (2·peak - d, v), for each distance d > 2·peak. The reflection
// compensates for the distance axis being truncated at zero.
func WorkingPoints(p *profile.Profile) (points []fit.Point, peak float64) {
	peak = PeakLocation(p)
	pivot := 2 * peak

	points = make([]fit.Point, 0, 2*p.Len())
	p.Each(func(d, v float64) {
		points = append(points, fit.Point{X: d, Y: v})
		if d > pivot {
			points = append(points, fit.Point{X: pivot - d, Y: v})
		}
	})

	return points, peak
}

func xSpan(points []fit.Point) float64 {
	if len(points) == 0 {
		return 0
	}

	lo, hi := points[0].X, points[0].X
	for _, pt := range points[1:] {
		lo = min(lo, pt.X)
		hi = max(hi, pt.X)
	}

	return hi - lo
}
