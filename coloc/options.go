package coloc

import (
	"github.com/cwbudde/algo-coloc/fit"
	"github.com/cwbudde/algo-coloc/internal/logging"
	"github.com/sirupsen/logrus"
)

// DefaultSmoothingSteps is the length of the retry sweep. Step k smooths
// the subtracted profile with an ordinal radius of k, covering window sizes
// minScale/10 through minScale/2.
const DefaultSmoothingSteps = 5

// Option configures an [Engine] or a batch run.
type Option func(*config)

type config struct {
	maxIterations  int
	smoothingSteps int
	workers        int
	logger         logrus.FieldLogger
}

func defaultConfig() config {
	return config{
		maxIterations:  fit.DefaultMaxIterations,
		smoothingSteps: DefaultSmoothingSteps,
		logger:         logging.Discard(),
	}
}

// WithMaxIterations caps solver iterations per attempt (default 100).
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithSmoothingSteps sets how many smoothed retries follow a rejected fit.
// Zero disables the sweep.
func WithSmoothingSteps(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.smoothingSteps = n
		}
	}
}

// WithWorkers bounds the binning goroutines used by [Analyze]. Zero keeps
// the binner default.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger for retry and fallback diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
