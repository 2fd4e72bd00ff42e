package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-coloc/gauss"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by the solver.
var (
	ErrInvalidCount      = errors.New("fit: component count must be >= 1")
	ErrTooFewPoints      = errors.New("fit: fewer observations than parameters")
	ErrTooManyIterations = errors.New("fit: maximum iteration count exceeded")
	ErrDiverged          = errors.New("fit: parameters left the admissible domain")
	ErrSingular          = errors.New("fit: normal equations are singular")
)

// DefaultMaxIterations bounds the number of Levenberg–Marquardt iterations.
const DefaultMaxIterations = 100

const (
	defaultTolerance = 1e-10
	initialLambda    = 1e-3
	minLambda        = 1e-12
	maxLambda        = 1e16
	diagFloor        = 1e-12
)

// Point is one (x, y) observation.
type Point struct {
	X, Y float64
}

// Result reports solver diagnostics.
type Result struct {
	Iterations int
	Cost       float64 // sum of squared residuals at the returned parameters
	Converged  bool
}

// Option configures the solver.
type Option func(*config)

type config struct {
	maxIterations int
	tolerance     float64
	maxSigma      float64
	initial       []gauss.Triplet
}

func defaultConfig() config {
	return config{
		maxIterations: DefaultMaxIterations,
		tolerance:     defaultTolerance,
	}
}

// WithMaxIterations sets the iteration cap (default 100).
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithTolerance sets the relative cost and parameter tolerance used to
// detect convergence (default 1e-10).
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithMaxSigma bounds every component's sigma. An accepted step that
// exceeds the bound ends the fit with [ErrDiverged]. Zero disables the bound.
func WithMaxSigma(s float64) Option {
	return func(c *config) {
		if s >= 0 {
			c.maxSigma = s
		}
	}
}

// WithInitialGuess replaces the built-in starting estimate.
func WithInitialGuess(ts []gauss.Triplet) Option {
	return func(c *config) {
		c.initial = append([]gauss.Triplet(nil), ts...)
	}
}

// Gaussians fits count Gaussian components to points with a
// Levenberg–Marquardt least-squares solver. The Jacobian comes from
// [gauss.Gradient]. Steps that would make a sigma non-positive are rejected
// by increasing the damping.
func Gaussians(points []Point, count int, opts ...Option) ([]gauss.Triplet, Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if count < 1 {
		return nil, Result{}, ErrInvalidCount
	}

	nParams := count * gauss.ParamsPerComponent
	if len(points) < nParams {
		return nil, Result{}, fmt.Errorf("%w: %d points for %d parameters", ErrTooFewPoints, len(points), nParams)
	}

	var start []gauss.Triplet
	if cfg.initial != nil {
		if len(cfg.initial) != count {
			return nil, Result{}, fmt.Errorf("fit: initial guess has %d components, want %d", len(cfg.initial), count)
		}

		start = cfg.initial
	} else {
		start = Guess(points, count)
	}

	s := newSolver(points, nParams, cfg)

	params, res, err := s.run(gauss.Flatten(start))
	if err != nil {
		return nil, res, err
	}

	return gauss.Unflatten(params), res, nil
}

type solver struct {
	xs, ys []float64
	n      int
	cfg    config

	jac  *mat.Dense
	res  *mat.VecDense
	grad []float64
}

func newSolver(points []Point, nParams int, cfg config) *solver {
	s := &solver{
		xs:   make([]float64, len(points)),
		ys:   make([]float64, len(points)),
		n:    nParams,
		cfg:  cfg,
		jac:  mat.NewDense(len(points), nParams, nil),
		res:  mat.NewVecDense(len(points), nil),
		grad: make([]float64, nParams),
	}

	for i, p := range points {
		s.xs[i] = p.X
		s.ys[i] = p.Y
	}

	return s
}

func (s *solver) cost(params []float64) float64 {
	var sum float64
	for i, x := range s.xs {
		r := s.ys[i] - gauss.Evaluate(x, params)
		sum += r * r
	}

	return sum
}

// linearize fills the Jacobian and residual vector at params.
func (s *solver) linearize(params []float64) {
	for i, x := range s.xs {
		s.res.SetVec(i, s.ys[i]-gauss.Evaluate(x, params))
		gauss.Gradient(x, params, s.grad)
		s.jac.SetRow(i, s.grad)
	}
}

// admissible reports whether params can be evaluated: finite values and
// strictly positive sigmas.
func admissible(params []float64) bool {
	for i, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}

		if i%gauss.ParamsPerComponent == 2 && v <= 0 {
			return false
		}
	}

	return true
}

func (s *solver) diverged(params []float64) bool {
	if s.cfg.maxSigma <= 0 {
		return false
	}

	for i := 2; i < len(params); i += gauss.ParamsPerComponent {
		if params[i] > s.cfg.maxSigma {
			return true
		}
	}

	return false
}

func (s *solver) run(start []float64) ([]float64, Result, error) {
	params := append([]float64(nil), start...)
	trial := make([]float64, s.n)

	if !admissible(params) {
		return nil, Result{}, fmt.Errorf("%w: invalid starting point", ErrDiverged)
	}

	cost := s.cost(params)
	lambda := initialLambda
	tol := s.cfg.tolerance

	var (
		jtj  mat.SymDense
		a    = mat.NewSymDense(s.n, nil)
		g    mat.VecDense
		step mat.VecDense
		chol mat.Cholesky
	)

	var res Result

	for iter := 1; iter <= s.cfg.maxIterations; iter++ {
		res.Iterations = iter
		res.Cost = cost

		if cost == 0 {
			res.Converged = true
			return params, res, nil
		}

		s.linearize(params)
		jtj.Reset()
		jtj.SymOuterK(1, s.jac.T())
		g.Reset()
		g.MulVec(s.jac.T(), s.res)

		var maxDiag float64
		for j := range s.n {
			maxDiag = math.Max(maxDiag, jtj.At(j, j))
		}

		if maxDiag == 0 || math.IsNaN(maxDiag) {
			return nil, res, ErrSingular
		}

		floor := diagFloor * maxDiag
		accepted := false

		for lambda <= maxLambda {
			a.CopySym(&jtj)
			for j := range s.n {
				d := jtj.At(j, j)
				a.SetSym(j, j, d+lambda*(d+floor))
			}

			if ok := chol.Factorize(a); !ok {
				lambda *= 10
				continue
			}

			step.Reset()
			if err := chol.SolveVecTo(&step, &g); err != nil {
				lambda *= 10
				continue
			}

			var stepNorm, paramNorm float64
			for j := range s.n {
				dj := step.AtVec(j)
				trial[j] = params[j] + dj
				stepNorm += dj * dj
				paramNorm += params[j] * params[j]
			}

			if math.Sqrt(stepNorm) <= tol*(math.Sqrt(paramNorm)+tol) {
				res.Converged = true
				return params, res, nil
			}

			if !admissible(trial) {
				lambda *= 10
				continue
			}

			trialCost := s.cost(trial)
			if !(trialCost < cost) {
				lambda *= 10
				continue
			}

			if s.diverged(trial) {
				return nil, res, ErrDiverged
			}

			reduction := cost - trialCost
			prev := cost
			copy(params, trial)
			cost = trialCost
			res.Cost = cost
			lambda = math.Max(lambda/10, minLambda)
			accepted = true

			if reduction <= tol*prev {
				res.Converged = true
				return params, res, nil
			}

			break
		}

		if !accepted {
			// No damping level reduces the cost: params is a local minimum
			// to working precision.
			res.Converged = true
			return params, res, nil
		}
	}

	return nil, res, fmt.Errorf("%w (%d)", ErrTooManyIterations, s.cfg.maxIterations)
}
