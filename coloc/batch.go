package coloc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-coloc/radial"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Frame is one time point of a multi-frame analysis.
type Frame struct {
	// Original is the raw cross-correlation image. It may be nil, in which
	// case no confidence is computed.
	Original *radial.Image
	// Subtracted is the background-subtracted cross-correlation image.
	Subtracted *radial.Image
	// Scale is the physical size of a pixel along each axis.
	Scale []float64
}

// FrameResult is the outcome of one frame. Engine is nil when the frame
// failed before fitting. Err holds configuration errors as well as the
// soft [ErrNoFit] and [ErrDegenerateStatistics] outcomes.
type FrameResult struct {
	Index  int
	Engine *Engine
	Err    error
}

// Batch collects the results of one [Analyze] call.
type Batch struct {
	RunID   uuid.UUID
	Results []FrameResult
}

// Analyze bins and fits every frame in order. A configuration error aborts
// only its own frame; the remaining frames are still processed.
func Analyze(frames []Frame, curveCount int, opts ...Option) *Batch {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Batch{RunID: uuid.New(), Results: make([]FrameResult, len(frames))}
	log := cfg.logger.WithField("run_id", b.RunID.String())

	for i, f := range frames {
		flog := log.WithField("frame", i)
		eng, err := analyzeFrame(f, curveCount, cfg, flog, opts)
		b.Results[i] = FrameResult{Index: i, Engine: eng, Err: err}

		switch {
		case eng == nil:
			flog.WithError(err).Error("frame skipped")
		case err != nil:
			flog.WithError(err).Warn("frame fit with warnings")
		default:
			flog.WithField("r_squared", eng.Statistics().RSquared).Info("frame fit")
		}
	}

	return b
}

func analyzeFrame(f Frame, curveCount int, cfg config, log logrus.FieldLogger, opts []Option) (*Engine, error) {
	if f.Subtracted == nil {
		return nil, ErrNilProfile
	}

	binOpts := []radial.Option{radial.WithLogger(log)}
	if cfg.workers > 0 {
		binOpts = append(binOpts, radial.WithWorkers(cfg.workers))
	}

	binner, err := radial.NewBinner(f.Subtracted.Dims, f.Scale, binOpts...)
	if err != nil {
		return nil, err
	}

	sub, err := binner.Profile(f.Subtracted)
	if err != nil {
		return nil, fmt.Errorf("subtracted: %w", err)
	}

	eng, err := NewEngine(curveCount, append(opts[:len(opts):len(opts)], WithLogger(log))...)
	if err != nil {
		return nil, err
	}

	if f.Original == nil {
		return eng, eng.FitCurve(sub, nil)
	}

	orig, err := binner.Profile(f.Original)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}

	return eng, eng.FitCurve(sub, orig)
}

// BestFrame returns the index of the most significant frame. When
// confidence is available the frame with the highest component confidence
// wins; otherwise the frame whose widest component is narrowest wins.
// Frames with a validated fit are preferred over sentinel frames.
// ok is false when no frame was fit.
func (b *Batch) BestFrame() (index int, ok bool) {
	if i, found := b.best(true); found {
		return i, true
	}

	return b.best(false)
}

func (b *Batch) best(validOnly bool) (int, bool) {
	bestIdx := -1
	bestScore := math.Inf(-1)

	for _, r := range b.Results {
		if r.Engine == nil || r.Engine.State() == Unfit {
			continue
		}

		if validOnly && !r.Engine.Valid() {
			continue
		}

		score := frameScore(r.Engine)
		if bestIdx < 0 || score > bestScore {
			bestIdx, bestScore = r.Index, score
		}
	}

	return bestIdx, bestIdx >= 0
}

// frameScore ranks frames: larger is better.
func frameScore(e *Engine) float64 {
	st := e.Statistics()
	if st.HasConfidence() {
		if c := st.MaxConfidence(); !math.IsNaN(c) {
			return c
		}

		return math.Inf(-1)
	}

	widest := 0.0
	for _, t := range e.Triplets() {
		widest = max(widest, t.Sigma)
	}

	return -widest
}
