package radial_test

import (
	"fmt"

	"github.com/cwbudde/algo-coloc/radial"
)

func ExampleBinner_Profile() {
	// 3x3 image: center, four edge pixels, four corners.
	img, _ := radial.FromSlice([]float64{
		1, 2, 1,
		2, 8, 2,
		1, 2, 1,
	}, 3, 3)

	b, _ := radial.NewBinner(img.Dims, []float64{0.5, 0.5})
	p, _ := b.Profile(img)

	p.Each(func(d, v float64) {
		fmt.Printf("%.3f %.1f\n", d, v)
	})
	// Output:
	// 0.000 8.0
	// 0.500 2.0
	// 0.707 1.0
}
