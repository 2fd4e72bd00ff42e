package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-coloc/coloc"
)

// Thresholds below which the summary warns.
type Thresholds struct {
	LowConfidence float64
	LowRSquared   float64
}

// Warning messages appended to a summary.
const (
	WarnNoFit = "A Gaussian curve could not be fit to the data. This can mean that " +
		"no spatial correlation exists or that the mask was too narrowly defined."
	WarnLowConfidence = "Confidence values below %g are considered low. This can indicate a " +
		"lack of significant spatial correlation, or that additional pre-processing is required."
	WarnLowRSquared = "The R-squared value of the Gaussian regression is very low. This can " +
		"indicate a low signal to noise ratio, or that the curve was fit to image noise."
	WarnDegenerate = "R-squared is undefined because the fitted window contains no variation."
)

// Summary renders the results of one analysis as text. channels names the
// two correlated inputs. Warnings follow the value listing.
func Summary(eng *coloc.Engine, channels [2]string, o Options, th Thresholds) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fit %d Gaussian curve(s) to the cross-correlation of:\n%q\nwith\n%q\n\n",
		eng.CurveCount(), channels[0], channels[1])

	for _, e := range Results(eng, o) {
		fmt.Fprintf(&sb, "%s: %s\n", e.Key, formatValue(e.Value))
	}

	for _, w := range Warnings(eng, th) {
		sb.WriteString("\n")
		sb.WriteString(w)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Warnings returns the interpretation warnings that apply to eng.
func Warnings(eng *coloc.Engine, th Thresholds) []string {
	var out []string

	if eng.State() == coloc.FitSentinel {
		out = append(out, WarnNoFit)
	}

	st := eng.Statistics()
	if st.HasConfidence() {
		for _, c := range st.Confidence {
			if !math.IsNaN(c) && c < th.LowConfidence {
				out = append(out, fmt.Sprintf(WarnLowConfidence, th.LowConfidence))
				break
			}
		}
	}

	switch {
	case math.IsNaN(st.RSquared):
		out = append(out, WarnDegenerate)
	case st.RSquared < th.LowRSquared:
		out = append(out, WarnLowRSquared)
	}

	return out
}
