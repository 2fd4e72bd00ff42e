package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by profile construction and queries.
var (
	ErrEmpty          = errors.New("profile: no samples")
	ErrLengthMismatch = errors.New("profile: keys and values must have same length")
	ErrUnsorted       = errors.New("profile: keys must be strictly ascending")
	ErrTooShort       = errors.New("profile: at least two samples required")
	ErrNegativeRadius = errors.New("profile: window radius must be >= 0")
)

// Profile is an ascending mapping from scaled radial distance to mean
// intensity. Keys are unique. A Profile is immutable once built.
type Profile struct {
	keys   []float64
	values []float64
}

// New builds a profile from parallel key and value slices. Keys must be
// strictly ascending and finite. Both slices are copied.
func New(keys, values []float64) (*Profile, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}

	if len(keys) == 0 {
		return nil, ErrEmpty
	}

	for i, k := range keys {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, fmt.Errorf("profile: key %d is not finite: %v", i, k)
		}

		if i > 0 && k <= keys[i-1] {
			return nil, fmt.Errorf("%w: key %d (%v) follows %v", ErrUnsorted, i, k, keys[i-1])
		}
	}

	return &Profile{
		keys:   append([]float64(nil), keys...),
		values: append([]float64(nil), values...),
	}, nil
}

// FromMap builds a profile from an unordered distance → value table.
func FromMap(m map[float64]float64) (*Profile, error) {
	if len(m) == 0 {
		return nil, ErrEmpty
	}

	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Float64s(keys)

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}

	return New(keys, values)
}

// Len returns the number of samples.
func (p *Profile) Len() int { return len(p.keys) }

// Key returns the i-th distance in ascending order.
func (p *Profile) Key(i int) float64 { return p.keys[i] }

// Value returns the value stored at the i-th distance.
func (p *Profile) Value(i int) float64 { return p.values[i] }

// Keys returns a copy of the ascending distances.
func (p *Profile) Keys() []float64 { return append([]float64(nil), p.keys...) }

// Values returns a copy of the values in key order.
func (p *Profile) Values() []float64 { return append([]float64(nil), p.values...) }

// FirstKey returns the smallest distance.
func (p *Profile) FirstKey() float64 { return p.keys[0] }

// LastKey returns the largest distance.
func (p *Profile) LastKey() float64 { return p.keys[len(p.keys)-1] }

// Lookup returns the value stored at exactly distance d.
func (p *Profile) Lookup(d float64) (float64, bool) {
	i := sort.SearchFloat64s(p.keys, d)
	if i < len(p.keys) && p.keys[i] == d {
		return p.values[i], true
	}

	return 0, false
}

// Peak returns the distance and value of the maximum sample. On ties the
// smallest distance wins. NaN values are never selected unless every value
// is NaN, in which case the first sample is returned.
func (p *Profile) Peak() (key, value float64) {
	idx := -1
	for i, v := range p.values {
		if math.IsNaN(v) {
			continue
		}

		if idx < 0 || v > p.values[idx] {
			idx = i
		}
	}

	if idx < 0 {
		idx = 0
	}

	return p.keys[idx], p.values[idx]
}

// Resolution returns the spacing between the two smallest distances, the
// effective sampling resolution of a radial profile.
func (p *Profile) Resolution() (float64, error) {
	if len(p.keys) < 2 {
		return 0, ErrTooShort
	}

	return p.keys[1] - p.keys[0], nil
}

// Span returns the half-open index range [start, end) of samples whose
// distance lies in the closed interval [lo, hi].
func (p *Profile) Span(lo, hi float64) (start, end int) {
	if hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 0
	}

	start = sort.SearchFloat64s(p.keys, lo)
	end = sort.Search(len(p.keys), func(i int) bool { return p.keys[i] > hi })

	return start, end
}

// Window returns the values whose distance lies in [lo, hi], in key order.
// The returned slice aliases nothing in p.
func (p *Profile) Window(lo, hi float64) (keys, values []float64) {
	start, end := p.Span(lo, hi)
	if start >= end {
		return nil, nil
	}

	return append([]float64(nil), p.keys[start:end]...), append([]float64(nil), p.values[start:end]...)
}

// Each calls fn for every sample in ascending distance order.
func (p *Profile) Each(fn func(d, v float64)) {
	for i, k := range p.keys {
		fn(k, p.values[i])
	}
}
