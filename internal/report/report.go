// Package report formats fit results for people: rounded result tables,
// the correlation table and a plain-text summary with interpretation
// warnings. Rounding happens here only; the fit engine works at full
// precision.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-coloc/coloc"
)

// SigDigits rounds v to n significant digits. NaN, infinities and zero are
// returned unchanged, as is v for n < 1.
func SigDigits(v float64, n int) float64 {
	if n < 1 || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', n, 64), 64)
	if err != nil {
		return v
	}

	return r
}

// Entry is one named result value.
type Entry struct {
	Key   string
	Value float64
}

// Options controls rounding and labelling.
type Options struct {
	Digits int    // significant digits
	Unit   string // distance unit used in column headings
}

func (o Options) unit() string {
	if o.Unit == "" {
		return "px"
	}

	return o.Unit
}

// Results lists per-component mean, standard deviation, height and, when
// available, confidence, followed by R². Values are rounded.
func Results(eng *coloc.Engine, o Options) []Entry {
	ts := eng.Triplets()
	st := eng.Statistics()
	u := o.unit()

	out := make([]Entry, 0, 4*len(ts)+1)
	for i, t := range ts {
		n := i + 1
		out = append(out,
			Entry{fmt.Sprintf("Mean%d (%s)", n, u), SigDigits(t.Mean, o.Digits)},
			Entry{fmt.Sprintf("StDev%d (%s)", n, u), SigDigits(t.Sigma, o.Digits)},
			Entry{fmt.Sprintf("Height%d", n), SigDigits(t.PeakHeight(), o.Digits)},
		)

		if st.HasConfidence() {
			out = append(out, Entry{fmt.Sprintf("Confidence%d", n), SigDigits(st.Confidence[i], o.Digits)})
		}
	}

	return append(out, Entry{"R-squared", SigDigits(st.RSquared, o.Digits)})
}

// WriteResults prints entries as an aligned two-column table.
func WriteResults(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Key, formatValue(e.Value))
	}

	return tw.Flush()
}

// WriteCorrelationTable prints one line per profile distance with the
// original and subtracted values and every fitted component.
func WriteCorrelationTable(w io.Writer, rows []coloc.Row, o Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{fmt.Sprintf("Distance (%s)", o.unit()), "Original CC", "Subtracted CC"}
	if len(rows) > 0 {
		for i := range rows[0].Fit {
			header = append(header, fmt.Sprintf("Gaussian fit-%d", i+1))
		}
	}

	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, r := range rows {
		cols := []string{
			formatValue(SigDigits(r.Distance, o.Digits)),
			formatValue(SigDigits(r.Original, o.Digits)),
			formatValue(SigDigits(r.Subtracted, o.Digits)),
		}

		for _, v := range r.Fit {
			cols = append(cols, formatValue(SigDigits(v, o.Digits)))
		}

		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
	}

	return tw.Flush()
}

// WriteFrameTable prints one line per frame of a batch with the fitted
// components, confidence and R². Frames that failed before fitting show
// their error instead.
func WriteFrameTable(w io.Writer, b *coloc.Batch, o Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Frame\tState\tMean\tSD\tHeight\tConfidence\tR-squared")

	for _, r := range b.Results {
		if r.Engine == nil {
			fmt.Fprintf(tw, "%d\terror: %v\t\t\t\t\t\n", r.Index, r.Err)
			continue
		}

		st := r.Engine.Statistics()
		for i, t := range r.Engine.Triplets() {
			conf := math.NaN()
			if st.HasConfidence() {
				conf = st.Confidence[i]
			}

			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Index, r.Engine.State(),
				formatValue(SigDigits(t.Mean, o.Digits)),
				formatValue(SigDigits(t.Sigma, o.Digits)),
				formatValue(SigDigits(t.PeakHeight(), o.Digits)),
				formatValue(SigDigits(conf, o.Digits)),
				formatValue(SigDigits(st.RSquared, o.Digits)))
		}
	}

	return tw.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
