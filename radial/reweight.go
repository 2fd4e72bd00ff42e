package radial

import (
	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

// Weights returns, for every pixel in storage order, fn evaluated at the
// pixel's scaled distance from the center.
func (b *Binner) Weights(fn func(distance float64) float64) []float64 {
	n, _ := pixelCount(b.dims)
	out := make([]float64, n)

	var g errgroup.Group
	g.SetLimit(b.cfg.workers)

	for _, c := range chunks(n, b.cfg.tasks) {
		g.Go(func() error {
			pos := make([]int, len(b.dims))
			position(b.dims, c.start, pos)

			for off := c.start; off < c.end; off++ {
				out[off] = fn(b.Distance(pos))
				advance(b.dims, pos)
			}

			return nil
		})
	}

	_ = g.Wait()

	return out
}

// Reweight returns a copy of img with each pixel multiplied by fn evaluated
// at that pixel's scaled distance. Passing a fitted mixture's Value method
// yields the Gaussian-reweighted correlation image.
func (b *Binner) Reweight(img *Image, fn func(distance float64) float64) (*Image, error) {
	if err := b.check(img); err != nil {
		return nil, err
	}

	weights := b.Weights(fn)
	out := &Image{Dims: append([]int(nil), img.Dims...), Pix: make([]float64, len(img.Pix))}
	vecmath.MulBlock(out.Pix, img.Pix, weights)

	return out, nil
}
