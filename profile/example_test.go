package profile_test

import (
	"fmt"

	"github.com/cwbudde/algo-coloc/profile"
)

func ExampleSmooth() {
	p, err := profile.New(
		[]float64{0, 0.1, 0.2, 0.3, 0.4},
		[]float64{0, 10, 0, 10, 0},
	)
	if err != nil {
		panic(err)
	}

	smoothed, err := profile.Smooth(p, 1)
	if err != nil {
		panic(err)
	}

	smoothed.Each(func(d, v float64) {
		fmt.Printf("%.1f: %.2f\n", d, v)
	})

	// Output:
	// 0.0: 5.00
	// 0.1: 3.33
	// 0.2: 6.67
	// 0.3: 3.33
	// 0.4: 5.00
}
