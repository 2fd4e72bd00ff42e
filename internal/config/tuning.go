// Package config loads the JSON tuning file used by the command-line tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cwbudde/algo-coloc/coloc"
	"github.com/cwbudde/algo-coloc/fit"
)

// Defaults applied by the Get* accessors when a field is omitted.
const (
	DefaultCurveCount        = 1
	DefaultSignificantDigits = 4
	DefaultLowConfidence     = 0.1
	DefaultLowRSquared       = 0.05
)

// Tuning holds optional analysis parameters. Omitted fields fall back to
// the package defaults, so partial files are valid.
type Tuning struct {
	CurveCount        *int      `json:"curve_count,omitempty"`
	MaxIterations     *int      `json:"max_iterations,omitempty"`
	SmoothingSteps    *int      `json:"smoothing_steps,omitempty"`
	Workers           *int      `json:"workers,omitempty"`
	SignificantDigits *int      `json:"significant_digits,omitempty"`
	Scale             []float64 `json:"scale,omitempty"`
	LowConfidence     *float64  `json:"low_confidence,omitempty"`
	LowRSquared       *float64  `json:"low_r_squared,omitempty"`
	LogLevel          *string   `json:"log_level,omitempty"`
}

// Empty returns a Tuning with every field unset.
func Empty() *Tuning { return &Tuning{} }

// Load reads and validates a tuning file. The path must end in .json and
// the file must be under 1 MiB.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	const maxFileSize = 1 << 20
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the ranges of every set field.
func (c *Tuning) Validate() error {
	if c.CurveCount != nil && *c.CurveCount < 1 {
		return fmt.Errorf("curve_count must be >= 1, got %d", *c.CurveCount)
	}

	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be >= 1, got %d", *c.MaxIterations)
	}

	if c.SmoothingSteps != nil && *c.SmoothingSteps < 0 {
		return fmt.Errorf("smoothing_steps must be >= 0, got %d", *c.SmoothingSteps)
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", *c.Workers)
	}

	if c.SignificantDigits != nil && (*c.SignificantDigits < 1 || *c.SignificantDigits > 17) {
		return fmt.Errorf("significant_digits must be between 1 and 17, got %d", *c.SignificantDigits)
	}

	for i, s := range c.Scale {
		if !(s > 0) {
			return fmt.Errorf("scale[%d] must be > 0, got %g", i, s)
		}
	}

	return nil
}

// GetCurveCount returns the number of Gaussian components to fit.
func (c *Tuning) GetCurveCount() int {
	if c.CurveCount == nil {
		return DefaultCurveCount
	}

	return *c.CurveCount
}

func (c *Tuning) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return fit.DefaultMaxIterations
	}

	return *c.MaxIterations
}

func (c *Tuning) GetSmoothingSteps() int {
	if c.SmoothingSteps == nil {
		return coloc.DefaultSmoothingSteps
	}

	return *c.SmoothingSteps
}

// GetWorkers returns the binning worker count; unset or zero means one per
// CPU.
func (c *Tuning) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}

	return *c.Workers
}

func (c *Tuning) GetSignificantDigits() int {
	if c.SignificantDigits == nil {
		return DefaultSignificantDigits
	}

	return *c.SignificantDigits
}

// GetScale returns the per-axis pixel scale, or unit scale for dims axes
// when none is configured.
func (c *Tuning) GetScale(dims int) []float64 {
	if len(c.Scale) == dims {
		return append([]float64(nil), c.Scale...)
	}

	out := make([]float64, dims)
	for i := range out {
		out[i] = 1
	}

	return out
}

func (c *Tuning) GetLowConfidence() float64 {
	if c.LowConfidence == nil {
		return DefaultLowConfidence
	}

	return *c.LowConfidence
}

func (c *Tuning) GetLowRSquared() float64 {
	if c.LowRSquared == nil {
		return DefaultLowRSquared
	}

	return *c.LowRSquared
}

func (c *Tuning) GetLogLevel() string {
	if c.LogLevel == nil {
		return "info"
	}

	return *c.LogLevel
}

// EngineOptions converts the tuning into engine options.
func (c *Tuning) EngineOptions() []coloc.Option {
	return []coloc.Option{
		coloc.WithMaxIterations(c.GetMaxIterations()),
		coloc.WithSmoothingSteps(c.GetSmoothingSteps()),
		coloc.WithWorkers(c.GetWorkers()),
	}
}
