// Command ccfit runs a cross-correlation colocalization analysis on
// synthetic two-channel images and prints the fitted Gaussian components.
//
// Usage:
//
//	ccfit [flags]
//
// Each frame holds randomly placed spots in the first channel and the same
// spots displaced by -shift pixels, plus noise, in the second. The
// channels are cross-correlated, a shuffled-background correlation is
// subtracted, both images are reduced to radial profiles and a mixture of
// Gaussians is fit to the subtracted profile.
//
// Examples:
//
//	ccfit
//	ccfit -dims 128,128 -scale 0.065,0.065 -shift 3 -curves 2
//	ccfit -frames 5 -table -plot cc.png
//	ccfit -model 0.02,0.2,0.1 -config tuning.json
//
// Without -log-level or a log_level in the config file the level is read
// from LOG_LEVEL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-coloc/coloc"
	"github.com/cwbudde/algo-coloc/gauss"
	"github.com/cwbudde/algo-coloc/internal/config"
	"github.com/cwbudde/algo-coloc/internal/logging"
	"github.com/cwbudde/algo-coloc/internal/plot"
	"github.com/cwbudde/algo-coloc/internal/report"
	"github.com/cwbudde/algo-coloc/internal/xcorr"
	"github.com/cwbudde/algo-coloc/radial"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

type options struct {
	dims      []int
	scale     []float64
	unit      string
	frames    int
	spots     int
	spotSigma float64
	shift     float64
	noise     float64
	seed      int64
	curves    int
	model     string
	table     bool
	plotPath  string
	tuning    *config.Tuning
}

func main() {
	dims := flag.String("dims", "64,64", "image extents, comma separated")
	scale := flag.String("scale", "", "physical pixel size per axis (default from config, else 1)")
	unit := flag.String("unit", "px", "distance unit used in output")
	frames := flag.Int("frames", 1, "number of frames to analyze")
	spots := flag.Int("spots", 40, "spots per frame")
	spotSigma := flag.Float64("spot-sigma", 1.5, "spot radius (Gaussian sigma) in pixels")
	shift := flag.Float64("shift", 2, "displacement of the second channel along axis 0 in pixels")
	noise := flag.Float64("noise", 0.05, "uniform noise amplitude relative to spot height")
	seed := flag.Int64("seed", 1, "random seed")
	curves := flag.Int("curves", 0, "Gaussian components to fit (default from config, else 1)")
	model := flag.String("model", "", "evaluate a fixed mixture \"amp,mean,sigma[,...]\" against the best frame")
	table := flag.Bool("table", false, "print the full correlation table")
	plotPath := flag.String("plot", "", "write a correlogram of the best frame to this file (.png, .svg, .pdf)")
	configPath := flag.String("config", "", "JSON tuning file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	jsonLog := flag.Bool("json-log", false, "emit logs as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccfit [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits Gaussian curves to the radial cross-correlation of synthetic two-channel images.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	tuning := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fatalf("%v", err)
		}

		tuning = loaded
	}

	var (
		log *logrus.Logger
		err error
	)

	if *logLevel == "" && tuning.LogLevel == nil {
		log = logging.FromEnv(*jsonLog, os.Stderr)
	} else {
		level := *logLevel
		if level == "" {
			level = tuning.GetLogLevel()
		}

		if log, err = logging.New(level, *jsonLog, os.Stderr); err != nil {
			fatalf("%v", err)
		}
	}

	opts := options{
		unit:      *unit,
		frames:    *frames,
		spots:     *spots,
		spotSigma: *spotSigma,
		shift:     *shift,
		noise:     *noise,
		seed:      *seed,
		curves:    *curves,
		model:     *model,
		table:     *table,
		plotPath:  *plotPath,
		tuning:    tuning,
	}

	if opts.dims, err = parseInts(*dims); err != nil {
		fatalf("invalid -dims: %v", err)
	}

	opts.scale = tuning.GetScale(len(opts.dims))
	if *scale != "" {
		if opts.scale, err = parseFloats(*scale); err != nil {
			fatalf("invalid -scale: %v", err)
		}
	}

	if opts.curves == 0 {
		opts.curves = tuning.GetCurveCount()
	}

	if err := run(opts, log); err != nil {
		fatalf("%v", err)
	}
}

func run(o options, log *logrus.Logger) error {
	frames := make([]coloc.Frame, 0, o.frames)

	for i := range o.frames {
		a, b, err := synthesize(o.dims, o.spots, o.spotSigma, o.shift, o.noise, o.seed+int64(i))
		if err != nil {
			return err
		}

		orig, sub, err := xcorr.Subtracted(a, b, o.seed)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		frames = append(frames, coloc.Frame{Original: orig, Subtracted: sub, Scale: o.scale})
	}

	engOpts := append(o.tuning.EngineOptions(), coloc.WithLogger(log))
	batch := coloc.Analyze(frames, o.curves, engOpts...)

	best, ok := batch.BestFrame()
	if !ok {
		return errors.Join(frameErrors(batch)...)
	}

	eng := batch.Results[best].Engine
	ropts := report.Options{Digits: o.tuning.GetSignificantDigits(), Unit: o.unit}
	th := report.Thresholds{LowConfidence: o.tuning.GetLowConfidence(), LowRSquared: o.tuning.GetLowRSquared()}

	fmt.Printf("Run %s, best frame %d of %d\n\n", batch.RunID, best, len(frames))

	if err := report.WriteResults(os.Stdout, report.Results(eng, ropts)); err != nil {
		return err
	}

	if len(frames) > 1 {
		fmt.Println()
		if err := report.WriteFrameTable(os.Stdout, batch, ropts); err != nil {
			return err
		}
	}

	if err := printReweighted(frames[best], eng, ropts); err != nil {
		return err
	}

	if o.model != "" {
		if err := printModel(frames[best], o.model, ropts); err != nil {
			return err
		}
	}

	if o.table {
		fmt.Println()
		if err := report.WriteCorrelationTable(os.Stdout, eng.Rows(), ropts); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Print(report.Summary(eng, [2]string{"channel 1", "channel 2"}, ropts, th))

	if o.plotPath != "" {
		title := fmt.Sprintf("Radial cross-correlation, frame %d", best)
		if err := plot.SaveCorrelogram(eng.Rows(), title, o.unit, o.plotPath); err != nil {
			return err
		}

		log.WithField("path", o.plotPath).Info("correlogram written")
	}

	return nil
}

// printReweighted reports the total of the subtracted correlation image
// after weighting every pixel with the fitted mixture.
func printReweighted(f coloc.Frame, eng *coloc.Engine, o report.Options) error {
	binner, err := radial.NewBinner(f.Subtracted.Dims, f.Scale)
	if err != nil {
		return err
	}

	img, err := binner.Reweight(f.Subtracted, eng.Mixture().Value)
	if err != nil {
		return err
	}

	total := floats.Sum(img.Pix)
	fmt.Printf("\nGaussian-weighted CC total: %v\n", report.SigDigits(total, o.Digits))

	return nil
}

// printModel evaluates a user-supplied mixture against the subtracted
// profile of f.
func printModel(f coloc.Frame, model string, o report.Options) error {
	m, err := gauss.Parse(model)
	if err != nil {
		return fmt.Errorf("invalid -model: %w", err)
	}

	binner, err := radial.NewBinner(f.Subtracted.Dims, f.Scale)
	if err != nil {
		return err
	}

	sub, err := binner.Profile(f.Subtracted)
	if err != nil {
		return err
	}

	r2, err := coloc.RSquared(sub, m)
	if err != nil && !errors.Is(err, coloc.ErrDegenerateStatistics) {
		return err
	}

	fmt.Printf("Model %q: R-squared %v\n", model, report.SigDigits(r2, o.Digits))

	return nil
}

func frameErrors(b *coloc.Batch) []error {
	var errs []error
	for _, r := range b.Results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("frame %d: %w", r.Index, r.Err))
		}
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no frame could be analyzed"))
	}

	return errs
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
