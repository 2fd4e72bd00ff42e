package coloc_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-coloc/coloc"
	"github.com/cwbudde/algo-coloc/profile"
)

func ExampleEngine_FitCurve() {
	keys := make([]float64, 201)
	values := make([]float64, 201)

	for i := range keys {
		keys[i] = float64(i) * 0.1
		d := keys[i] - 5
		values[i] = 1000 * math.Exp(-d*d/2)
	}

	sub, _ := profile.New(keys, values)

	eng, _ := coloc.NewEngine(1)
	if err := eng.FitCurve(sub, sub); err != nil {
		fmt.Println(err)
		return
	}

	t := eng.Triplets()[0]
	st := eng.Statistics()
	fmt.Printf("mean=%.2f sigma=%.2f height=%.0f\n", t.Mean, t.Sigma, t.PeakHeight())
	fmt.Printf("confidence=%.2f r2>0.99=%v retries=%d\n", st.Confidence[0], st.RSquared > 0.99, eng.Retries())
	// Output:
	// mean=5.00 sigma=1.00 height=1000
	// confidence=1.00 r2>0.99=true retries=0
}

func ExampleEngine_FitCurve_noFit() {
	keys := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	flat := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5}

	sub, _ := profile.New(keys, flat)

	eng, _ := coloc.NewEngine(1)
	err := eng.FitCurve(sub, nil)

	fmt.Println(errors.Is(err, coloc.ErrNoFit), eng.State())
	fmt.Printf("%+v\n", eng.Triplets()[0])
	// Output:
	// true no fit
	// {Amplitude:0 Mean:-1 Sigma:8}
}
