package radial

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/cwbudde/algo-coloc/internal/logging"
	"github.com/cwbudde/algo-coloc/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Configuration errors returned by [NewBinner].
var (
	ErrDimensionMismatch = errors.New("radial: scale length does not match image dimensionality")
	ErrInvalidScale      = errors.New("radial: scale values must be > 0")
	ErrInvalidExtent     = errors.New("radial: image extents must be > 0")
)

// Option configures a [Binner].
type Option func(*config)

type config struct {
	workers int
	tasks   int
	logger  logrus.FieldLogger
}

func defaultConfig() config {
	workers := runtime.GOMAXPROCS(0)

	return config{
		workers: workers,
		tasks:   workers,
		logger:  logging.Discard(),
	}
}

// WithWorkers bounds the number of goroutines scanning the image
// (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithTasks sets how many contiguous chunks the image is split into
// (default: the worker count). The result does not depend on this value.
func WithTasks(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tasks = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Binner reduces N-dimensional images to radial profiles around the image
// center. Distances are measured in physical units using a per-axis scale.
type Binner struct {
	dims   []int
	scale  []float64
	center []float64
	cfg    config
}

// NewBinner creates a binner for images with the given extents. scale must
// have one strictly positive entry per axis.
func NewBinner(dims []int, scale []float64, opts ...Option) (*Binner, error) {
	if len(scale) != len(dims) {
		return nil, fmt.Errorf("%w: %d axes, %d scale values", ErrDimensionMismatch, len(dims), len(scale))
	}

	if _, err := pixelCount(dims); err != nil {
		return nil, err
	}

	for i, s := range scale {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: axis %d has scale %v", ErrInvalidScale, i, s)
		}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	center := make([]float64, len(dims))
	for i, d := range dims {
		center[i] = (float64(d) - 1) / 2
	}

	return &Binner{
		dims:   slices.Clone(dims),
		scale:  slices.Clone(scale),
		center: center,
		cfg:    cfg,
	}, nil
}

// Dims returns the image extents the binner accepts.
func (b *Binner) Dims() []int { return slices.Clone(b.dims) }

// Center returns the per-axis center in pixel units.
func (b *Binner) Center() []float64 { return slices.Clone(b.center) }

// Distance returns the scaled distance of pixel pos from the image center.
func (b *Binner) Distance(pos []int) float64 {
	var sq float64
	for i, p := range pos {
		d := (float64(p) - b.center[i]) * b.scale[i]
		sq += d * d
	}

	return math.Sqrt(sq)
}

// Profile bins img by exact scaled distance and returns the mean intensity
// at each distance. Distances that differ only by rounding stay separate.
func (b *Binner) Profile(img *Image) (*profile.Profile, error) {
	if err := b.check(img); err != nil {
		return nil, err
	}

	buckets := b.accumulate(img)

	keys := make([]float64, 0, len(buckets))
	for d := range buckets {
		keys = append(keys, d)
	}

	slices.Sort(keys)

	values := make([]float64, len(keys))
	for i, d := range keys {
		bk := buckets[d]
		values[i] = bk.sum / float64(bk.count)
	}

	b.cfg.logger.WithFields(logrus.Fields{
		"pixels":  img.Len(),
		"buckets": len(keys),
		"tasks":   b.cfg.tasks,
	}).Debug("radial profile computed")

	return profile.New(keys, values)
}

// Profiles bins the original and subtracted correlation images in one call.
// The two profiles are keyed independently.
func (b *Binner) Profiles(original, subtracted *Image) (orig, sub *profile.Profile, err error) {
	orig, err = b.Profile(original)
	if err != nil {
		return nil, nil, fmt.Errorf("original: %w", err)
	}

	sub, err = b.Profile(subtracted)
	if err != nil {
		return nil, nil, fmt.Errorf("subtracted: %w", err)
	}

	return orig, sub, nil
}

func (b *Binner) check(img *Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}

	if !slices.Equal(img.Dims, b.dims) {
		return fmt.Errorf("%w: image %v, binner %v", ErrShapeMismatch, img.Dims, b.dims)
	}

	if n, _ := pixelCount(img.Dims); n != len(img.Pix) {
		return fmt.Errorf("%w: %d pixels for extents %v", ErrShapeMismatch, len(img.Pix), img.Dims)
	}

	return nil
}

type bucket struct {
	sum   float64
	count int
}

type span struct {
	start, end int
}

// chunks splits [0, n) into at most tasks contiguous spans.
func chunks(n, tasks int) []span {
	tasks = max(min(tasks, n), 1)
	size := (n + tasks - 1) / tasks

	out := make([]span, 0, tasks)
	for start := 0; start < n; start += size {
		out = append(out, span{start: start, end: min(start+size, n)})
	}

	return out
}

// accumulate scans img in parallel. Each task bins its chunk locally and
// merges into the shared table under a lock.
func (b *Binner) accumulate(img *Image) map[float64]bucket {
	shared := make(map[float64]bucket)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	g.SetLimit(b.cfg.workers)

	for _, c := range chunks(len(img.Pix), b.cfg.tasks) {
		g.Go(func() error {
			local := make(map[float64]bucket)
			pos := make([]int, len(b.dims))
			position(b.dims, c.start, pos)

			for off := c.start; off < c.end; off++ {
				d := b.Distance(pos)
				bk := local[d]
				bk.sum += img.Pix[off]
				bk.count++
				local[d] = bk

				advance(b.dims, pos)
			}

			mu.Lock()
			defer mu.Unlock()

			for d, bk := range local {
				acc := shared[d]
				acc.sum += bk.sum
				acc.count += bk.count
				shared[d] = acc
			}

			return nil
		})
	}

	_ = g.Wait()

	return shared
}
