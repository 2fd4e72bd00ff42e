package gauss

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNonPositiveSigma is returned when a parsed component has sigma <= 0.
var ErrNonPositiveSigma = errors.New("gauss: standard deviation must be > 0")

// Parse reads a comma-separated list of repeated height, mean, sigma values,
// for example "3.205e7, 0.7433, 0.3369, 4.841e7, 2.046, 1.342".
func Parse(s string) (*Mixture, error) {
	fields := strings.Split(s, ",")
	params := make([]float64, 0, len(fields))

	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("gauss: parameter %d: %w", i+1, err)
		}

		params = append(params, v)
	}

	m, err := New(params...)
	if err != nil {
		return nil, err
	}

	for i, c := range m.components {
		if c.Sigma <= 0 {
			return nil, fmt.Errorf("%w: component %d has sigma %v", ErrNonPositiveSigma, i+1, c.Sigma)
		}
	}

	return m, nil
}
