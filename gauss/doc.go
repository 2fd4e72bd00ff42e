// Package gauss implements sums of independent one-dimensional Gaussian
// components.
//
// A [Mixture] evaluates
//
//	f(x) = Σ_i a_i * exp(-(x-m_i)² / (2*s_i²))
//
// and exposes per-component evaluation for tabular export and for rendering
// Gaussian-reweighted correlation images.
//
// [Gradient] returns a per-triplet gradient that treats each component in
// isolation. It is the Jacobian source for the least-squares solver in
// package fit.
package gauss
