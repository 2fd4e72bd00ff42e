// Package xcorr computes N-dimensional cross-correlation images with FFTs.
// It produces the original and background-subtracted correlation images
// consumed by the radial binner.
package xcorr

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/cwbudde/algo-coloc/radial"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by the correlation functions.
var (
	ErrShapeMismatch = errors.New("xcorr: images must have identical extents")
	ErrConstantImage = errors.New("xcorr: image has zero variance")
)

// Correlate returns the linear cross-correlation c(l) = Σ_x a(x+l)·b(x)
// as an image with the extents of a. Output pixel p holds lag
// p - floor(extent/2) on every axis, so zero lag sits at the image center.
func Correlate(a, b *radial.Image) (*radial.Image, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}

	padded := make([]int, len(a.Dims))
	for i, d := range a.Dims {
		padded[i] = nextPowerOf2(2*d - 1)
	}

	plans, err := newPlans(padded)
	if err != nil {
		return nil, err
	}

	af := embed(a, padded)
	bf := embed(b, padded)

	if err := transform(af, padded, plans, true); err != nil {
		return nil, err
	}

	if err := transform(bf, padded, plans, true); err != nil {
		return nil, err
	}

	for i := range af {
		bConj := complex(real(bf[i]), -imag(bf[i]))
		af[i] *= bConj
	}

	if err := transform(af, padded, plans, false); err != nil {
		return nil, err
	}

	out, _ := radial.NewImage(a.Dims...)
	pos := make([]int, len(a.Dims))

	for off := range out.Pix {
		out.Position(off, pos)

		src, stride := 0, 1
		for i, p := range pos {
			lag := p - a.Dims[i]/2
			if lag < 0 {
				lag += padded[i]
			}

			src += lag * stride
			stride *= padded[i]
		}

		out.Pix[off] = real(af[src])
	}

	return out, nil
}

// Normalized returns the Pearson-style correlation image: both inputs are
// standardized to zero mean and unit variance and the correlation is
// divided by the pixel count, so the zero-lag value of identical inputs
// is 1.
func Normalized(a, b *radial.Image) (*radial.Image, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}

	sa, err := standardize(a)
	if err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}

	sb, err := standardize(b)
	if err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}

	out, err := Correlate(sa, sb)
	if err != nil {
		return nil, err
	}

	vecmath.ScaleBlock(out.Pix, out.Pix, 1/float64(len(out.Pix)))

	return out, nil
}

// Subtracted returns the normalized correlation of a and b together with
// the same correlation after subtracting a background computed against a
// pixel-shuffled copy of b. Shuffling keeps the intensity distribution of b
// and destroys its spatial structure.
func Subtracted(a, b *radial.Image, seed int64) (original, subtracted *radial.Image, err error) {
	original, err = Normalized(a, b)
	if err != nil {
		return nil, nil, err
	}

	background, err := Normalized(a, Shuffle(b, seed))
	if err != nil {
		return nil, nil, fmt.Errorf("background: %w", err)
	}

	subtracted, err = Subtract(original, background)
	if err != nil {
		return nil, nil, err
	}

	return original, subtracted, nil
}

// Subtract returns a - b pixel by pixel.
func Subtract(a, b *radial.Image) (*radial.Image, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}

	out, _ := radial.NewImage(a.Dims...)
	vecmath.ScaleBlock(out.Pix, b.Pix, -1)
	vecmath.AddBlockInPlace(out.Pix, a.Pix)

	return out, nil
}

// Shuffle returns a copy of img with its pixels permuted by a seeded
// generator.
func Shuffle(img *radial.Image, seed int64) *radial.Image {
	out := &radial.Image{Dims: slices.Clone(img.Dims), Pix: slices.Clone(img.Pix)}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out.Pix), func(i, j int) {
		out.Pix[i], out.Pix[j] = out.Pix[j], out.Pix[i]
	})

	return out
}

func standardize(img *radial.Image) (*radial.Image, error) {
	mean, std := stat.PopMeanStdDev(img.Pix, nil)
	if std == 0 {
		return nil, ErrConstantImage
	}

	out := &radial.Image{Dims: slices.Clone(img.Dims), Pix: make([]float64, len(img.Pix))}
	for i, v := range img.Pix {
		out.Pix[i] = (v - mean) / std
	}

	return out, nil
}

func sameShape(a, b *radial.Image) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}

	if !slices.Equal(a.Dims, b.Dims) || len(a.Pix) != len(b.Pix) {
		return fmt.Errorf("%w: %v and %v", ErrShapeMismatch, a.Dims, b.Dims)
	}

	if len(a.Pix) == 0 {
		return fmt.Errorf("%w: empty image", ErrShapeMismatch)
	}

	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
