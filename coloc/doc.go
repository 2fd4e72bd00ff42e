// Package coloc fits Gaussian mixtures to radial cross-correlation profiles
// and derives colocalization statistics from them.
//
// An [Engine] takes the background-subtracted profile (and optionally the
// original one) and runs the following sequence once:
//
//  1. Find the peak; a peak at the smallest distance counts as 0.
//  2. Reflect samples beyond twice the peak distance through the peak.
//  3. Solve for the configured number of components (100 iterations).
//  4. Reject any component with sigma at or below the profile resolution,
//     a mean below minus the resolution, or a negative amplitude.
//  5. On rejection, smooth the profile with increasing ordinal radius and
//     retry, up to [DefaultSmoothingSteps] times.
//  6. If nothing passes, install sentinel components {0, -1, last distance}.
//  7. Compute R² over three sigma of the first component and, with an
//     original profile, a confidence ratio per component.
//
// Failure to fit is soft: FitCurve returns an error matching [ErrNoFit],
// yet rows, statistics and the mixture stay available so callers can still
// present intermediate data.
//
// # Usage
//
//	eng, err := coloc.NewEngine(1)
//	err = eng.FitCurve(subtracted, original)
//	switch {
//	case errors.Is(err, coloc.ErrNoFit):
//		// mark the frame as statistically invalid
//	case errors.Is(err, coloc.ErrDegenerateStatistics):
//		// R² is NaN
//	}
//	for _, t := range eng.Triplets() { ... }
//
// [Analyze] drives the binner and engine across a sequence of frames.
package coloc
