// Package radial reduces N-dimensional correlation images to radial
// profiles.
//
// A [Binner] is built for one image shape and a per-axis physical scale.
// The image center on each axis is (extent-1)/2 in pixel units and the
// distance of a pixel p is
//
//	sqrt(Σ_i ((p_i - center_i) * scale_i)²)
//
// Pixels are grouped by exact distance; the profile value is the mean
// intensity of each group. Grouping uses floating-point equality, so
// distances that differ by rounding error are separate samples.
//
// # Parallelism
//
// The pixel range is split into contiguous chunks that run on a bounded
// pool of goroutines. Each chunk bins locally and merges into one shared
// table under a mutex, so the profile does not depend on the chunking
// beyond summation order within a distance group.
//
// # Usage
//
//	b, err := radial.NewBinner([]int{64, 64}, []float64{0.1, 0.1})
//	orig, sub, err := b.Profiles(originalCC, subtractedCC)
//
// [Binner.Reweight] multiplies every pixel of an image by a function of its
// distance, which renders Gaussian-reweighted correlation images from a
// fitted mixture.
package radial
