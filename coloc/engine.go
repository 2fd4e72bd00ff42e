package coloc

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-coloc/fit"
	"github.com/cwbudde/algo-coloc/gauss"
	"github.com/cwbudde/algo-coloc/profile"
	"github.com/sirupsen/logrus"
)

// SentinelMean marks a component that could not be fit.
const SentinelMean = -1

// State is the lifecycle stage of an [Engine].
type State int

const (
	// Unfit is the state of a new engine.
	Unfit State = iota
	// FitValid means every component passed validation.
	FitValid
	// FitSentinel means no valid fit was found and sentinels were installed.
	FitSentinel
)

func (s State) String() string {
	switch s {
	case Unfit:
		return "unfit"
	case FitValid:
		return "fit"
	case FitSentinel:
		return "no fit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Row is one line of the correlation table.
type Row struct {
	Distance   float64
	Original   float64 // NaN without an original sample at Distance
	Subtracted float64 // NaN without a subtracted sample at Distance
	Fit        []float64
}

// Engine fits a fixed number of Gaussian components to a radial
// cross-correlation profile. An engine is fit at most once and is read-only
// afterwards.
type Engine struct {
	curveCount int
	cfg        config

	state    State
	sub      *profile.Profile
	orig     *profile.Profile
	mixture  *gauss.Mixture
	stats    Statistics
	minScale float64
	retries  int
	solver   fit.Result
}

// NewEngine returns an unfit engine for curveCount components.
func NewEngine(curveCount int, opts ...Option) (*Engine, error) {
	if curveCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCurveCount, curveCount)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		curveCount: curveCount,
		cfg:        cfg,
		stats:      Statistics{RSquared: math.NaN()},
	}, nil
}

// FitCurve fits the engine's components to sub and computes R² and, when
// orig is non-nil, per-component confidence.
//
// A fit is attempted on the raw profile first. If any component is rejected
// the attempt is repeated on profiles smoothed with ordinal radius 1, 2, ...
// up to the configured step count, stopping at the first valid fit. When
// the sweep is exhausted every component is replaced by the sentinel
// {0, -1, largest distance} and the returned error matches [ErrNoFit].
// A degenerate R² window adds [ErrDegenerateStatistics]. In both cases all
// accessors remain populated.
func (e *Engine) FitCurve(sub, orig *profile.Profile) error {
	if e.state != Unfit {
		return ErrAlreadyFit
	}

	if sub == nil {
		return ErrNilProfile
	}

	minScale, err := sub.Resolution()
	if err != nil {
		return fmt.Errorf("coloc: subtracted profile: %w", err)
	}

	log := e.cfg.logger.WithFields(logrus.Fields{
		"curve_count": e.curveCount,
		"min_scale":   minScale,
	})

	ts, ok := e.attempt(sub, minScale, log)
	for k := 1; !ok && k <= e.cfg.smoothingSteps; k++ {
		smoothed, err := profile.Smooth(sub, k)
		if err != nil {
			return fmt.Errorf("coloc: smoothing: %w", err)
		}

		e.retries = k
		log.WithField("retries", k).Debug("fit rejected, retrying on smoothed profile")

		ts, ok = e.attempt(smoothed, minScale, log)
	}

	e.sub, e.orig, e.minScale = sub, orig, minScale

	if ok {
		e.state = FitValid
	} else {
		ts = sentinels(e.curveCount, sub.LastKey())
		e.state = FitSentinel

		log.WithField("retries", e.retries).Warn("no valid Gaussian fit, installing sentinels")
	}

	e.mixture, err = gauss.FromTriplets(ts)
	if err != nil {
		return fmt.Errorf("coloc: %w", err)
	}

	var errs []error
	if hasSentinel(ts) {
		errs = append(errs, ErrNoFit)
	}

	e.stats.RSquared, err = RSquared(sub, e.mixture)
	if err != nil {
		errs = append(errs, err)
	}

	if orig != nil {
		e.stats.Confidence = Confidence(sub, orig, ts)
	}

	return errors.Join(errs...)
}

// attempt runs one solve on the mirrored points of p and validates the
// result. A solver failure counts as a rejected attempt.
func (e *Engine) attempt(p *profile.Profile, minScale float64, log logrus.FieldLogger) ([]gauss.Triplet, bool) {
	points, peak := WorkingPoints(p)

	ts, res, err := fit.Gaussians(points, e.curveCount,
		fit.WithMaxIterations(e.cfg.maxIterations),
		fit.WithMaxSigma(xSpan(points)),
	)

	e.solver = res

	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"peak":       peak,
			"iterations": res.Iterations,
		}).Debug("solver gave no result")

		return nil, false
	}

	for i, t := range ts {
		if !ValidTriplet(t, minScale) {
			log.WithFields(logrus.Fields{
				"component": i,
				"amplitude": t.Amplitude,
				"mean":      t.Mean,
				"sigma":     t.Sigma,
			}).Debug("component rejected")

			return ts, false
		}
	}

	return ts, true
}

// ValidTriplet reports whether t is a physically meaningful component for a
// profile with resolution minScale: sigma above the resolution, mean not
// below -minScale, and a non-negative amplitude.
func ValidTriplet(t gauss.Triplet, minScale float64) bool {
	return t.Sigma > minScale && t.Mean >= -minScale && t.Amplitude >= 0
}

func sentinels(n int, lastKey float64) []gauss.Triplet {
	ts := make([]gauss.Triplet, n)
	for i := range ts {
		ts[i] = gauss.Triplet{Amplitude: 0, Mean: SentinelMean, Sigma: lastKey}
	}

	return ts
}

func hasSentinel(ts []gauss.Triplet) bool {
	for _, t := range ts {
		if t.Mean == SentinelMean {
			return true
		}
	}

	return false
}

// CurveCount returns the number of components the engine fits.
func (e *Engine) CurveCount() int { return e.curveCount }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Valid reports whether the engine holds a validated fit.
func (e *Engine) Valid() bool { return e.state == FitValid }

// Retries returns the number of smoothed attempts made after the first.
func (e *Engine) Retries() int { return e.retries }

// MinScale returns the profile resolution used for validation.
func (e *Engine) MinScale() float64 { return e.minScale }

// SolverResult returns diagnostics of the last solver run.
func (e *Engine) SolverResult() fit.Result { return e.solver }

// Mixture returns the fitted model, or nil before FitCurve.
func (e *Engine) Mixture() *gauss.Mixture { return e.mixture }

// Triplets returns a copy of the fitted components, or nil before FitCurve.
func (e *Engine) Triplets() []gauss.Triplet {
	if e.mixture == nil {
		return nil
	}

	return e.mixture.Components()
}

// Statistics returns R² and confidence. RSquared is NaN before FitCurve.
func (e *Engine) Statistics() Statistics {
	s := e.stats
	if s.Confidence != nil {
		s.Confidence = append([]float64(nil), s.Confidence...)
	}

	return s
}

// Rows returns the correlation table: one row per distance of the original
// profile (or the subtracted profile when no original was given), with the
// value of every fitted component. Rows is nil before FitCurve.
func (e *Engine) Rows() []Row {
	if e.mixture == nil {
		return nil
	}

	keyed := e.sub
	if e.orig != nil {
		keyed = e.orig
	}

	rows := make([]Row, 0, keyed.Len())
	keyed.Each(func(d, _ float64) {
		r := Row{
			Distance:   d,
			Original:   lookup(e.orig, d),
			Subtracted: lookup(e.sub, d),
			Fit:        make([]float64, e.curveCount),
		}

		for i := range r.Fit {
			r.Fit[i] = e.mixture.ComponentValue(i, d)
		}

		rows = append(rows, r)
	})

	return rows
}

func lookup(p *profile.Profile, d float64) float64 {
	if p == nil {
		return math.NaN()
	}

	if v, ok := p.Lookup(d); ok {
		return v
	}

	return math.NaN()
}
