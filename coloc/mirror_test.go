package coloc

import (
	"testing"

	"github.com/cwbudde/algo-coloc/fit"
	"github.com/cwbudde/algo-coloc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakLocation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []float64
		values []float64
		want   float64
	}{
		{"interior peak", []float64{0, 1, 2, 3}, []float64{1, 3, 9, 2}, 2},
		{"first occurrence on ties", []float64{0.5, 1, 2, 3}, []float64{1, 5, 5, 2}, 1},
		{"peak at smallest key", []float64{0.5, 1, 2}, []float64{9, 5, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeakLocation(mustProfile(t, tt.keys, tt.values)))
		})
	}
}

func TestWorkingPointsMirrorsBeyondTwicePeak(t *testing.T) {
	keys := testutil.Grid(0, 1, 11)
	values := []float64{0, 1, 4, 9, 4, 1, 0.5, 0.3, 0.2, 0.1, 0}

	points, peak := WorkingPoints(mustProfile(t, keys, values))
	require.Equal(t, 3.0, peak)

	// Distances 7..10 exceed 2·peak = 6; 6 itself does not.
	require.Len(t, points, len(keys)+4)

	var mirrored []fit.Point
	for _, p := range points {
		if p.X < 0 {
			mirrored = append(mirrored, p)
		}
	}

	want := []fit.Point{{X: -1, Y: 0.3}, {X: -2, Y: 0.2}, {X: -3, Y: 0.1}, {X: -4, Y: 0}}
	assert.Equal(t, want, mirrored)
}

func TestWorkingPointsPeakAtOrigin(t *testing.T) {
	keys := []float64{0.2, 0.4, 0.6}
	points, peak := WorkingPoints(mustProfile(t, keys, []float64{3, 2, 1}))

	assert.Zero(t, peak)
	assert.Equal(t, []fit.Point{
		{X: 0.2, Y: 3}, {X: -0.2, Y: 3},
		{X: 0.4, Y: 2}, {X: -0.4, Y: 2},
		{X: 0.6, Y: 1}, {X: -0.6, Y: 1},
	}, points)
}

func TestXSpan(t *testing.T) {
	assert.Zero(t, xSpan(nil))
	assert.Equal(t, 7.0, xSpan([]fit.Point{{X: 2}, {X: -3}, {X: 4}}))
}
