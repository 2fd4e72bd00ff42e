package gauss

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when a flat parameter list is not made of
// whole (amplitude, mean, sigma) triplets.
var ErrDimensionMismatch = errors.New("gauss: parameter count must be a positive multiple of 3")

// ParamsPerComponent is the number of parameters describing one component.
const ParamsPerComponent = 3

// Triplet describes one Gaussian component:
//
//	f(x) = Amplitude * exp(-(x-Mean)² / (2*Sigma²))
type Triplet struct {
	Amplitude float64
	Mean      float64
	Sigma     float64
}

// Value evaluates the component at x.
func (t Triplet) Value(x float64) float64 {
	d := x - t.Mean
	return t.Amplitude * math.Exp(-d*d/(2*t.Sigma*t.Sigma))
}

// PeakHeight returns the component's value at its mean.
func (t Triplet) PeakHeight() float64 { return t.Amplitude }

// Mixture is a sum of independent 1-D Gaussian components.
type Mixture struct {
	components []Triplet
}

// New builds a mixture from a flat parameter list ordered as repeated
// (amplitude, mean, sigma) triplets.
func New(params ...float64) (*Mixture, error) {
	if len(params) == 0 || len(params)%ParamsPerComponent != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrDimensionMismatch, len(params))
	}

	return &Mixture{components: Unflatten(params)}, nil
}

// FromTriplets builds a mixture from explicit components.
func FromTriplets(ts []Triplet) (*Mixture, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: got 0", ErrDimensionMismatch)
	}

	return &Mixture{components: append([]Triplet(nil), ts...)}, nil
}

// Len returns the number of components.
func (m *Mixture) Len() int { return len(m.components) }

// Component returns the i-th component.
func (m *Mixture) Component(i int) Triplet { return m.components[i] }

// Components returns a copy of all components.
func (m *Mixture) Components() []Triplet { return append([]Triplet(nil), m.components...) }

// SetComponent replaces the i-th component.
func (m *Mixture) SetComponent(i int, t Triplet) { m.components[i] = t }

// Params returns the flat (amplitude, mean, sigma) parameter list.
func (m *Mixture) Params() []float64 { return Flatten(m.components) }

// Value evaluates the full mixture at x.
func (m *Mixture) Value(x float64) float64 {
	var sum float64
	for _, c := range m.components {
		sum += c.Value(x)
	}

	return sum
}

// ComponentValue evaluates only the i-th component at x.
func (m *Mixture) ComponentValue(i int, x float64) float64 {
	return m.components[i].Value(x)
}

// Evaluate evaluates the mixture described by a flat parameter list at x.
func Evaluate(x float64, params []float64) float64 {
	var sum float64
	for i := 0; i+2 < len(params); i += ParamsPerComponent {
		d := x - params[i+1]
		s := params[i+2]
		sum += params[i] * math.Exp(-d*d/(2*s*s))
	}

	return sum
}

// Gradient writes into dst the partial derivatives of the mixture at x with
// respect to each parameter, in the same layout as params.
//
// Each triplet is differentiated as if its component alone explained the
// data: cross-component terms are ignored. The solver in package fit relies
// on this decoupled form.
func Gradient(x float64, params, dst []float64) {
	for i := 0; i+2 < len(params); i += ParamsPerComponent {
		amp := params[i]
		diff := x - params[i+1]
		sigma := params[i+2]
		i2s2 := 1 / (2 * sigma * sigma)

		g := math.Exp(-diff * diff * i2s2)
		dst[i] = g
		dst[i+1] = amp * g * 2 * i2s2 * diff
		dst[i+2] = dst[i+1] * diff / sigma
	}
}

// Flatten converts triplets into a flat parameter list.
func Flatten(ts []Triplet) []float64 {
	out := make([]float64, 0, len(ts)*ParamsPerComponent)
	for _, t := range ts {
		out = append(out, t.Amplitude, t.Mean, t.Sigma)
	}

	return out
}

// Unflatten converts a flat parameter list into triplets. Trailing values
// that do not form a whole triplet are ignored.
func Unflatten(params []float64) []Triplet {
	out := make([]Triplet, 0, len(params)/ParamsPerComponent)
	for i := 0; i+2 < len(params); i += ParamsPerComponent {
		out = append(out, Triplet{Amplitude: params[i], Mean: params[i+1], Sigma: params[i+2]})
	}

	return out
}
