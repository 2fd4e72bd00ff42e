package radial

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when an image does not have the shape the
// binner was built for, or when pixel storage does not match the extents.
var ErrShapeMismatch = errors.New("radial: image shape mismatch")

// Image is an N-dimensional real-valued image. Pixels are stored in Pix
// with axis 0 varying fastest.
type Image struct {
	Dims []int
	Pix  []float64
}

// NewImage allocates a zero-filled image with the given extents.
func NewImage(dims ...int) (*Image, error) {
	n, err := pixelCount(dims)
	if err != nil {
		return nil, err
	}

	return &Image{Dims: append([]int(nil), dims...), Pix: make([]float64, n)}, nil
}

// FromSlice wraps existing pixel data without copying.
func FromSlice(pix []float64, dims ...int) (*Image, error) {
	n, err := pixelCount(dims)
	if err != nil {
		return nil, err
	}

	if len(pix) != n {
		return nil, fmt.Errorf("%w: %d pixels for extents %v", ErrShapeMismatch, len(pix), dims)
	}

	return &Image{Dims: append([]int(nil), dims...), Pix: pix}, nil
}

// NumDims returns the dimensionality.
func (im *Image) NumDims() int { return len(im.Dims) }

// Len returns the pixel count.
func (im *Image) Len() int { return len(im.Pix) }

// Offset returns the storage index of the pixel at pos.
func (im *Image) Offset(pos ...int) int {
	off, stride := 0, 1
	for i, p := range pos {
		off += p * stride
		stride *= im.Dims[i]
	}

	return off
}

// At returns the pixel at pos.
func (im *Image) At(pos ...int) float64 { return im.Pix[im.Offset(pos...)] }

// Set stores v at pos.
func (im *Image) Set(v float64, pos ...int) { im.Pix[im.Offset(pos...)] = v }

// Position writes the coordinates of storage index off into pos.
func (im *Image) Position(off int, pos []int) {
	position(im.Dims, off, pos)
}

func position(dims []int, off int, pos []int) {
	for i, d := range dims {
		pos[i] = off % d
		off /= d
	}
}

// advance moves pos to the next pixel in storage order.
func advance(dims, pos []int) {
	for i := range pos {
		pos[i]++
		if pos[i] < dims[i] {
			return
		}

		pos[i] = 0
	}
}

func pixelCount(dims []int) (int, error) {
	if len(dims) == 0 {
		return 0, fmt.Errorf("%w: no dimensions", ErrInvalidExtent)
	}

	n := 1
	for i, d := range dims {
		if d <= 0 {
			return 0, fmt.Errorf("%w: axis %d has extent %d", ErrInvalidExtent, i, d)
		}

		n *= d
	}

	return n, nil
}
