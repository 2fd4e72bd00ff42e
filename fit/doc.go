// Package fit provides a Levenberg–Marquardt least-squares solver for sums
// of Gaussian components.
//
// # Usage
//
//	points := []fit.Point{{X: 0, Y: 1}, ...}
//	triplets, res, err := fit.Gaussians(points, 2, fit.WithMaxIterations(100))
//	if errors.Is(err, fit.ErrTooManyIterations) {
//		// no converged solution
//	}
//
// The normal equations (JᵀJ + λ·diag(JᵀJ))·δ = Jᵀr are solved with a
// Cholesky factorisation from gonum. The Jacobian J is built from
// [gauss.Gradient], which differentiates each component independently.
//
// Starting values come from [Guess] unless [WithInitialGuess] is supplied.
package fit
