package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-coloc/coloc"
	"github.com/cwbudde/algo-coloc/internal/testutil"
	"github.com/cwbudde/algo-coloc/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitEngine(t *testing.T, sub, orig []float64, keys []float64) *coloc.Engine {
	t.Helper()

	sp, err := profile.New(keys, sub)
	require.NoError(t, err)

	var op *profile.Profile
	if orig != nil {
		op, err = profile.New(keys, orig)
		require.NoError(t, err)
	}

	eng, err := coloc.NewEngine(1)
	require.NoError(t, err)
	_ = eng.FitCurve(sp, op)

	return eng
}

func cleanEngine(t *testing.T, origScale float64) *coloc.Engine {
	keys := testutil.Grid(0, 0.1, 201)
	sub := testutil.GaussianSamples(keys, 1000, 5, 1)
	orig := testutil.GaussianSamples(keys, 1000*origScale, 5, 1)

	return fitEngine(t, sub, orig, keys)
}

func TestSigDigits(t *testing.T) {
	tests := []struct {
		v    float64
		n    int
		want float64
	}{
		{123456, 3, 123000},
		{0.00123456, 2, 0.0012},
		{-9.876, 2, -9.9},
		{1.5, 0, 1.5},
		{0, 4, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SigDigits(tt.v, tt.n), "SigDigits(%v, %d)", tt.v, tt.n)
	}

	assert.True(t, math.IsNaN(SigDigits(math.NaN(), 3)))
	assert.True(t, math.IsInf(SigDigits(math.Inf(1), 3), 1))
}

func TestResults(t *testing.T) {
	eng := cleanEngine(t, 1)
	entries := Results(eng, Options{Digits: 3, Unit: "µm"})

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}

	assert.Equal(t, []string{"Mean1 (µm)", "StDev1 (µm)", "Height1", "Confidence1", "R-squared"}, keys)
	assert.Equal(t, 5.0, entries[0].Value)
	assert.Equal(t, 1.0, entries[1].Value)
	assert.Equal(t, 1000.0, entries[2].Value)
	assert.Equal(t, 1.0, entries[3].Value)
	assert.Equal(t, 1.0, entries[4].Value)
}

func TestResultsWithoutConfidence(t *testing.T) {
	keys := testutil.Grid(0, 0.1, 201)
	eng := fitEngine(t, testutil.GaussianSamples(keys, 1000, 5, 1), nil, keys)

	for _, e := range Results(eng, Options{Digits: 4}) {
		assert.NotContains(t, e.Key, "Confidence")
	}
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []Entry{{"Mean1 (px)", 2.5}, {"R-squared", math.NaN()}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Mean1 (px)  2.5", lines[0])
	assert.Equal(t, "R-squared   -", lines[1])
}

func TestWriteCorrelationTable(t *testing.T) {
	eng := cleanEngine(t, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteCorrelationTable(&buf, eng.Rows(), Options{Digits: 4}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 202)
	assert.Contains(t, lines[0], "Distance (px)")
	assert.Contains(t, lines[0], "Gaussian fit-1")
	assert.Equal(t, 4, len(strings.Fields(lines[51])))
}

func TestWriteFrameTable(t *testing.T) {
	b := &coloc.Batch{Results: []coloc.FrameResult{
		{Index: 0, Err: coloc.ErrNilProfile},
		{Index: 1, Engine: cleanEngine(t, 2)},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteFrameTable(&buf, b, Options{Digits: 3}))

	out := buf.String()
	assert.Contains(t, out, "error: coloc: subtracted profile is required")
	assert.Contains(t, out, "0.5")
}

func TestSummaryCleanFitHasNoWarnings(t *testing.T) {
	eng := cleanEngine(t, 1)
	th := Thresholds{LowConfidence: 0.1, LowRSquared: 0.05}

	assert.Empty(t, Warnings(eng, th))

	s := Summary(eng, [2]string{"red", "green"}, Options{Digits: 4}, th)
	assert.Contains(t, s, "\"red\"\nwith\n\"green\"")
	assert.Contains(t, s, "R-squared: 1\n")
}

func TestWarnings(t *testing.T) {
	th := Thresholds{LowConfidence: 0.3, LowRSquared: 0.05}

	low := cleanEngine(t, 4)
	assert.Equal(t, []string{"Confidence values below 0.3 are considered low. This can indicate a " +
		"lack of significant spatial correlation, or that additional pre-processing is required."}, Warnings(low, th))

	keys := testutil.Grid(0, 1, 21)
	flat := fitEngine(t, testutil.Constant(5, 21), nil, keys)
	assert.Equal(t, []string{WarnNoFit, WarnDegenerate}, Warnings(flat, th))

	s := Summary(flat, [2]string{"a", "b"}, Options{Digits: 4}, th)
	assert.Contains(t, s, "Mean1 (px): -1\n")
	assert.Contains(t, s, WarnNoFit)
}
