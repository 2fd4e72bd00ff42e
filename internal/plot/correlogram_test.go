package plot

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-coloc/coloc"
)

func sampleRows() []coloc.Row {
	rows := make([]coloc.Row, 50)
	for i := range rows {
		d := float64(i) * 0.2
		g := 10 * math.Exp(-(d-4)*(d-4)/2)
		rows[i] = coloc.Row{Distance: d, Original: g + 1, Subtracted: g, Fit: []float64{g, 0}}
	}

	rows[3].Original = math.NaN()

	return rows
}

func TestCorrelogram(t *testing.T) {
	p, err := Correlogram(sampleRows(), "frame 0", "µm")
	if err != nil {
		t.Fatal(err)
	}

	if p.X.Label.Text != "Distance (µm)" {
		t.Errorf("X label = %q", p.X.Label.Text)
	}

	if p.Title.Text != "frame 0" {
		t.Errorf("title = %q", p.Title.Text)
	}
}

func TestCorrelogramNoRows(t *testing.T) {
	if _, err := Correlogram(nil, "", "px"); !errors.Is(err, ErrNoRows) {
		t.Fatalf("Correlogram(nil) error = %v, want %v", err, ErrNoRows)
	}
}

func TestSaveCorrelogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cc.png")

	if err := SaveCorrelogram(sampleRows(), "test", "px", path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if info.Size() == 0 {
		t.Fatal("empty image written")
	}
}

func TestGenerateColors(t *testing.T) {
	if got := generateColors(0); len(got) != 0 {
		t.Fatalf("generateColors(0) = %v", got)
	}

	cs := generateColors(3)
	if len(cs) != 3 {
		t.Fatalf("len = %d, want 3", len(cs))
	}

	// Hue 0 at 70% saturation, 50% lightness is a red.
	if got, want := cs[0], (color.RGBA{R: 217, G: 38, B: 38, A: 255}); got != want {
		t.Errorf("first color = %v, want %v", got, want)
	}

	if cs[1] == cs[2] {
		t.Error("colors not distinct")
	}
}
