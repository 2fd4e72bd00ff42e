package coloc

import "errors"

// Errors returned by [Engine.FitCurve] and [NewEngine].
var (
	// ErrInvalidCurveCount is returned by [NewEngine] for a count below one.
	ErrInvalidCurveCount = errors.New("coloc: curve count must be >= 1")

	// ErrNilProfile is returned when no subtracted profile is supplied.
	ErrNilProfile = errors.New("coloc: subtracted profile is required")

	// ErrAlreadyFit is returned by a second call to FitCurve.
	ErrAlreadyFit = errors.New("coloc: engine has already been fit")

	// ErrNoFit marks a soft failure: no valid Gaussian survived the
	// smoothing sweep and sentinel triplets were installed. Every other
	// field of the engine is still populated.
	ErrNoFit = errors.New("coloc: could not fit Gaussian curve to data")

	// ErrDegenerateStatistics is reported when the R² window is empty or
	// has zero variance. RSquared is NaN in that case.
	ErrDegenerateStatistics = errors.New("coloc: R² window has zero variance")
)
