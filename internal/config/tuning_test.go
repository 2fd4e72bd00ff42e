package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cwbudde/algo-coloc/coloc"
	"github.com/cwbudde/algo-coloc/fit"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	return path
}

func TestEmptyDefaults(t *testing.T) {
	cfg := Empty()

	if got := cfg.GetCurveCount(); got != DefaultCurveCount {
		t.Errorf("GetCurveCount() = %d, want %d", got, DefaultCurveCount)
	}
	if got := cfg.GetMaxIterations(); got != fit.DefaultMaxIterations {
		t.Errorf("GetMaxIterations() = %d, want %d", got, fit.DefaultMaxIterations)
	}
	if got := cfg.GetSmoothingSteps(); got != coloc.DefaultSmoothingSteps {
		t.Errorf("GetSmoothingSteps() = %d, want %d", got, coloc.DefaultSmoothingSteps)
	}
	if got := cfg.GetWorkers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("GetWorkers() = %d, want GOMAXPROCS", got)
	}
	if got := cfg.GetSignificantDigits(); got != DefaultSignificantDigits {
		t.Errorf("GetSignificantDigits() = %d, want %d", got, DefaultSignificantDigits)
	}
	if got := cfg.GetScale(3); len(got) != 3 || got[0] != 1 || got[2] != 1 {
		t.Errorf("GetScale(3) = %v, want unit scale", got)
	}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on empty config: %v", err)
	}
	if got := len(cfg.EngineOptions()); got != 3 {
		t.Errorf("EngineOptions() has %d options, want 3", got)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{
  "curve_count": 2,
  "max_iterations": 250,
  "smoothing_steps": 3,
  "workers": 4,
  "significant_digits": 6,
  "scale": [0.1, 0.1, 0.3],
  "low_confidence": 0.2,
  "log_level": "debug"
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetCurveCount() != 2 {
		t.Errorf("GetCurveCount() = %d, want 2", cfg.GetCurveCount())
	}
	if cfg.GetMaxIterations() != 250 {
		t.Errorf("GetMaxIterations() = %d, want 250", cfg.GetMaxIterations())
	}
	if cfg.GetSmoothingSteps() != 3 {
		t.Errorf("GetSmoothingSteps() = %d, want 3", cfg.GetSmoothingSteps())
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("GetWorkers() = %d, want 4", cfg.GetWorkers())
	}
	if cfg.GetSignificantDigits() != 6 {
		t.Errorf("GetSignificantDigits() = %d, want 6", cfg.GetSignificantDigits())
	}
	if s := cfg.GetScale(3); s[2] != 0.3 {
		t.Errorf("GetScale(3) = %v", s)
	}
	if s := cfg.GetScale(2); s[0] != 1 {
		t.Errorf("GetScale(2) with 3 configured axes = %v, want unit scale", s)
	}
	if cfg.GetLowConfidence() != 0.2 {
		t.Errorf("GetLowConfidence() = %v, want 0.2", cfg.GetLowConfidence())
	}
	if cfg.GetLowRSquared() != DefaultLowRSquared {
		t.Errorf("GetLowRSquared() = %v, want default", cfg.GetLowRSquared())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() = %q, want debug", cfg.GetLogLevel())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "tuning.yaml", `{}`, ".json extension"},
		{"bad json", "tuning.json", `{"curve_count":`, "failed to parse"},
		{"zero curves", "tuning.json", `{"curve_count": 0}`, "curve_count"},
		{"zero iterations", "tuning.json", `{"max_iterations": 0}`, "max_iterations"},
		{"negative steps", "tuning.json", `{"smoothing_steps": -1}`, "smoothing_steps"},
		{"negative workers", "tuning.json", `{"workers": -2}`, "workers"},
		{"too many digits", "tuning.json", `{"significant_digits": 20}`, "significant_digits"},
		{"zero scale", "tuning.json", `{"scale": [0.1, 0]}`, "scale[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateAllowsZeroSmoothing(t *testing.T) {
	cfg := &Tuning{SmoothingSteps: ptrInt(0), Workers: ptrInt(0)}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cfg.GetSmoothingSteps() != 0 {
		t.Errorf("GetSmoothingSteps() = %d, want 0", cfg.GetSmoothingSteps())
	}
}

func ptrInt(v int) *int { return &v }
