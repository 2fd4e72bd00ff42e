// Package plot renders radial correlation profiles and their fitted
// components as PNG images.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/cwbudde/algo-coloc/coloc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoRows is returned when there is nothing to draw.
var ErrNoRows = errors.New("plot: no rows")

// Size of saved images.
const (
	Width  = 14 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	originalColor   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	subtractedColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

type series struct {
	label string
	pick  func(coloc.Row) float64
	color color.Color
	width vg.Length
}

// Correlogram builds a plot of the original and subtracted profiles with
// one line per fitted component.
func Correlogram(rows []coloc.Row, title, unit string) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("Distance (%s)", unit)
	p.Y.Label.Text = "Cross-correlation"

	lines := []series{
		{"Original CC", func(r coloc.Row) float64 { return r.Original }, originalColor, vg.Points(1)},
		{"Subtracted CC", func(r coloc.Row) float64 { return r.Subtracted }, subtractedColor, vg.Points(1.5)},
	}

	components := len(rows[0].Fit)
	colors := generateColors(components)

	for i := range components {
		lines = append(lines, series{
			fmt.Sprintf("Gaussian fit-%d", i+1), func(r coloc.Row) float64 { return r.Fit[i] }, colors[i], vg.Points(1),
		})
	}

	for _, s := range lines {
		pts := make(plotter.XYs, 0, len(rows))
		for _, r := range rows {
			if y := s.pick(r); !math.IsNaN(y) {
				pts = append(pts, plotter.XY{X: r.Distance, Y: y})
			}
		}

		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}

		line.Color = s.color
		line.Width = s.width
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// SaveCorrelogram renders [Correlogram] to path. The format follows the
// file extension.
func SaveCorrelogram(rows []coloc.Row, title, unit, path string) error {
	p, err := Correlogram(rows, title, unit)
	if err != nil {
		return err
	}

	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("save correlogram: %w", err)
	}

	return nil
}

// generateColors spreads n hues around the color wheel.
func generateColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range n {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}

	p := 2*l - q

	return toByte(hueToRGB(p, q, h+1.0/3)), toByte(hueToRGB(p, q, h)), toByte(hueToRGB(p, q, h-1.0/3))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}

	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}
