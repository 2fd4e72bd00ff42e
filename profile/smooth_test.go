package profile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSmoothZeroRadiusIsIdentity(t *testing.T) {
	p := mustProfile(t, []float64{0, 0.1, 0.3, 0.7}, []float64{3.5, -1, 8, 0.25})

	got, err := Smooth(p, 0)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(p.Keys(), got.Keys()); diff != "" {
		t.Errorf("keys changed (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(p.Values(), got.Values()); diff != "" {
		t.Errorf("values changed (-want +got):\n%s", diff)
	}
}

func TestSmoothClampsAtEdges(t *testing.T) {
	p := mustProfile(t, []float64{0, 1, 2, 3, 4}, []float64{1, 2, 3, 4, 10})

	got, err := Smooth(p, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{
		(1 + 2) / 2.0,
		(1 + 2 + 3) / 3.0,
		(2 + 3 + 4) / 3.0,
		(3 + 4 + 10) / 3.0,
		(4 + 10) / 2.0,
	}

	if diff := cmp.Diff(want, got.Values()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSmoothUsesOrdinalPositions(t *testing.T) {
	// Uneven spacing must not affect which neighbors are averaged.
	p := mustProfile(t, []float64{0, 0.001, 5, 100}, []float64{0, 4, 8, 12})

	got, err := Smooth(p, 1)
	if err != nil {
		t.Fatal(err)
	}

	if v := got.Value(1); v != 4 {
		t.Errorf("Value(1) = %v, want 4", v)
	}

	if v := got.Value(2); v != 8 {
		t.Errorf("Value(2) = %v, want 8", v)
	}
}

func TestSmoothRadiusLargerThanProfile(t *testing.T) {
	p := mustProfile(t, []float64{0, 1, 2}, []float64{3, 6, 9})

	got, err := Smooth(p, 10)
	if err != nil {
		t.Fatal(err)
	}

	for i := range got.Len() {
		if got.Value(i) != 6 {
			t.Errorf("Value(%d) = %v, want 6", i, got.Value(i))
		}
	}
}

func TestSmoothNegativeRadius(t *testing.T) {
	p := mustProfile(t, []float64{0, 1}, []float64{1, 2})

	if _, err := Smooth(p, -1); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Smooth(-1) error = %v, want %v", err, ErrNegativeRadius)
	}
}

func BenchmarkSmooth(b *testing.B) {
	n := 4096
	keys := make([]float64, n)
	values := make([]float64, n)
	for i := range keys {
		keys[i] = float64(i) * 0.1
		values[i] = float64(i % 17)
	}

	p, err := New(keys, values)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := Smooth(p, 5); err != nil {
			b.Fatal(err)
		}
	}
}
