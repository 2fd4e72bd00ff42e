// Package profile provides the radial profile container used throughout the
// colocalization pipeline: an immutable, ascending mapping from scaled
// distance to mean correlation intensity.
//
// Profiles are produced by package radial and consumed by package coloc.
// Keys are exact floating-point distances; two keys that differ by rounding
// error are distinct samples.
//
// # Smoothing
//
// [Smooth] applies a moving average over ordinal positions:
//
//	smoothed, err := profile.Smooth(p, 2) // average of up to 5 neighbors
//
// # Windows
//
// [Profile.Span] and [Profile.Window] select samples in a closed distance
// interval, which is how fit statistics restrict themselves to ±3σ of a
// fitted component.
package profile
