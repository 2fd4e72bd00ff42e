package coloc

import (
	"testing"

	"github.com/cwbudde/algo-coloc/internal/testutil"
	"github.com/cwbudde/algo-coloc/radial"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blobDims = []int{21, 21}

func blobImage(t *testing.T, amplitude, sigmaPx, offset float64) *radial.Image {
	t.Helper()

	pix := testutil.GaussianBlob(blobDims, []float64{10, 10}, amplitude, sigmaPx)
	for i := range pix {
		pix[i] += offset
	}

	img, err := radial.FromSlice(pix, blobDims...)
	require.NoError(t, err)

	return img
}

func TestAnalyzeContinuesAfterFrameError(t *testing.T) {
	scale := []float64{0.1, 0.1}

	frames := []Frame{
		{Subtracted: blobImage(t, 100, 3, 0), Scale: []float64{0.1}},
		{Subtracted: blobImage(t, 100, 3, 0), Original: blobImage(t, 100, 3, 10), Scale: scale},
		{Scale: scale},
		{Subtracted: blobImage(t, 100, 3, 0), Original: blobImage(t, 100, 3, 1), Scale: scale},
	}

	b := Analyze(frames, 1, WithWorkers(2))
	require.Len(t, b.Results, len(frames))
	assert.NotEqual(t, uuid.Nil, b.RunID)

	assert.Nil(t, b.Results[0].Engine)
	assert.ErrorIs(t, b.Results[0].Err, radial.ErrDimensionMismatch)

	assert.Nil(t, b.Results[2].Engine)
	assert.ErrorIs(t, b.Results[2].Err, ErrNilProfile)

	for _, i := range []int{1, 3} {
		r := b.Results[i]
		require.NoError(t, r.Err, "frame %d", i)
		require.NotNil(t, r.Engine)
		assert.Equal(t, i, r.Index)
		assert.True(t, r.Engine.Valid())

		tr := r.Engine.Triplets()[0]
		assert.InDelta(t, 0.3, tr.Sigma, 0.003, "frame %d", i)
		assert.InDelta(t, 100, tr.Amplitude, 1, "frame %d", i)
		assert.InDelta(t, 0, tr.Mean, 0.01, "frame %d", i)
	}

	low := b.Results[1].Engine.Statistics().Confidence[0]
	high := b.Results[3].Engine.Statistics().Confidence[0]
	assert.Less(t, low, high)

	best, ok := b.BestFrame()
	require.True(t, ok)
	assert.Equal(t, 3, best)
}

func TestBestFrameBySigmaWithoutConfidence(t *testing.T) {
	scale := []float64{0.1, 0.1}

	frames := []Frame{
		{Subtracted: blobImage(t, 50, 5, 0), Scale: scale},
		{Subtracted: blobImage(t, 50, 3, 0), Scale: scale},
	}

	b := Analyze(frames, 1)

	for _, r := range b.Results {
		require.NoError(t, r.Err)
		assert.False(t, r.Engine.Statistics().HasConfidence())
	}

	best, ok := b.BestFrame()
	require.True(t, ok)
	assert.Equal(t, 1, best)
}

func TestBestFrameEmpty(t *testing.T) {
	b := Analyze([]Frame{{Scale: []float64{1}}}, 1)

	_, ok := b.BestFrame()
	assert.False(t, ok)
}
