// Command beamdemo synthesizes a narrowband pulse arriving at a uniform
// linear array, runs the delay-and-sum beamformer over a fan of look
// directions and prints the resulting beam pattern.
//
// Usage:
//
//	beamdemo [flags]
//
// Examples:
//
//	beamdemo
//	beamdemo -doa 60 -snr 0 -angles 361
//	beamdemo -sensors 31 -shading hann -interp sinc
//	beamdemo -snr inf -metrics
//
// The logger is configured from LOG_LEVEL (debug, info, warn, error) and
// LOG_FORMAT (text, json).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/cwbudde/algo-beamform/dsp/array"
	"github.com/cwbudde/algo-beamform/dsp/beamform"
	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/interp"
	"github.com/cwbudde/algo-beamform/dsp/synth"
	"github.com/cwbudde/algo-beamform/dsp/window"
	"github.com/cwbudde/algo-beamform/internal/logging"
	"github.com/cwbudde/algo-beamform/measure/pattern"
)

type options struct {
	length      float64
	sensors     int
	sampleRate  float64
	soundSpeed  float64
	duration    float64
	pulseLen    float64
	f0          float64
	amplitude   float64
	onset       float64
	doa         float64 // degrees
	snr         float64
	angles      int
	shading     window.Type
	alpha       float64
	interp      interp.Mode
	spectral    bool
	randomPhase bool
	workers     int
	seed        int64
	normalize   bool
	metric      pattern.Metric
	metrics     bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, log)

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Error(ctx, "beamdemo failed", logging.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var shading, interpName, metric string

	fs := flag.NewFlagSet("beamdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.length, "length", 1.4, "array length L in meters")
	fs.IntVar(&opts.sensors, "sensors", 15, "number of sensors M (odd)")
	fs.Float64Var(&opts.sampleRate, "fs", 48000, "sample rate in Hz")
	fs.Float64Var(&opts.soundSpeed, "c0", core.DefaultSoundSpeed, "speed of sound in m/s")
	fs.Float64Var(&opts.duration, "duration", 0.05, "recording length T in seconds")
	fs.Float64Var(&opts.pulseLen, "pulse", 0.01, "pulse duration in seconds")
	fs.Float64Var(&opts.f0, "f0", 5000, "pulse carrier frequency in Hz")
	fs.Float64Var(&opts.amplitude, "amp", 1, "pulse amplitude")
	fs.Float64Var(&opts.onset, "onset", 0.015625, "pulse onset at the array origin in seconds")
	fs.Float64Var(&opts.doa, "doa", 45, "true direction of arrival in degrees")
	fs.Float64Var(&opts.snr, "snr", 10, "pulse-to-noise ratio in dB (inf disables noise)")
	fs.IntVar(&opts.angles, "angles", 181, "number of look directions over [0, 180] degrees")
	fs.StringVar(&shading, "shading", "rectangular", "shading window ("+strings.Join(window.Names(), ", ")+")")
	fs.Float64Var(&opts.alpha, "alpha", math.NaN(), "alpha/beta parameter for parametric shading windows")
	fs.StringVar(&interpName, "interp", "hermite", "fractional-delay kernel (linear, hermite, lagrange3, lanczos3, sinc)")
	fs.BoolVar(&opts.spectral, "spectral", false, "place the pulse with the FFT phase-ramp delay")
	fs.BoolVar(&opts.randomPhase, "random-phase", false, "draw the carrier phase from the seed")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "goroutines used by the beamformer")
	fs.Int64Var(&opts.seed, "seed", 1, "random seed for noise and phase")
	fs.BoolVar(&opts.normalize, "normalize", true, "divide the beamformer output by M")
	fs.StringVar(&metric, "metric", "energy", "pattern level (peak, energy, carrier)")
	fs.BoolVar(&opts.metrics, "metrics", false, "print beamformer metrics after the run")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: beamdemo [flags]\n\n")
		fmt.Fprintf(stderr, "Runs delay-and-sum beamforming on a synthetic array recording.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  beamdemo -doa 60 -snr 0 -angles 361\n")
		fmt.Fprintf(stderr, "  beamdemo -sensors 31 -shading hann -interp sinc\n")
		fmt.Fprintf(stderr, "  beamdemo -snr inf -metrics\n")
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var err error
	if opts.shading, err = window.ParseType(shading); err != nil {
		return options{}, err
	}
	if opts.interp, err = interp.ParseMode(strings.ToLower(interpName)); err != nil {
		return options{}, err
	}
	if opts.metric, err = pattern.ParseMetric(strings.ToLower(metric)); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	log := logging.FromContext(ctx)

	geom, err := array.NewULA(opts.length, opts.sensors)
	if err != nil {
		return err
	}
	fields := []logging.Field{
		logging.Int("sensors", geom.Count()),
		logging.Float("length_m", geom.Length()),
		logging.Float("spacing_m", geom.Spacing()),
	}
	if fmax, err := geom.MaxUnaliasedFrequency(opts.soundSpeed); err == nil {
		fields = append(fields, logging.Float("max_unaliased_hz", fmax))
		if opts.f0 > fmax {
			log.Warn(ctx, "carrier above the spatial aliasing limit",
				logging.Float("f0_hz", opts.f0), logging.Float("max_unaliased_hz", fmax))
		}
	}
	log.Info(ctx, "array built", fields...)

	synthOpts := []synth.Option{
		synth.WithSeed(opts.seed),
		synth.WithInterpolation(opts.interp),
	}
	if opts.randomPhase {
		synthOpts = append(synthOpts, synth.WithRandomPhase())
	}
	if opts.spectral {
		synthOpts = append(synthOpts, synth.WithSpectralDelay())
	}

	pulse, err := synth.NarrowbandPulse(opts.amplitude, opts.pulseLen, opts.f0, opts.sampleRate, synthOpts...)
	if err != nil {
		return err
	}
	scene := synth.Scene{
		Onset:      opts.onset,
		Duration:   opts.duration,
		Direction:  core.DegToRad(opts.doa),
		SampleRate: opts.sampleRate,
		SoundSpeed: opts.soundSpeed,
		SNR:        opts.snr,
	}
	signals, err := synth.ArraySignals(geom, pulse, scene, synthOpts...)
	if err != nil {
		return err
	}
	log.Debug(ctx, "signals synthesized",
		logging.Int("samples", signals.Cols()), logging.Int("pulse_samples", len(pulse)))

	var winOpts []window.Option
	if !math.IsNaN(opts.alpha) {
		winOpts = append(winOpts, window.WithAlpha(opts.alpha))
	}
	weights, err := beamform.ShadingWeights(opts.shading, geom.Count(), winOpts...)
	if err != nil {
		return err
	}
	angles, err := beamform.SteeringAngles(opts.angles)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := beamform.NewMetrics(reg)
	if err != nil {
		return err
	}
	bfOpts := []beamform.Option{
		beamform.WithSoundSpeed(opts.soundSpeed),
		beamform.WithInterpolation(opts.interp),
		beamform.WithWorkers(opts.workers),
		beamform.WithMetrics(metrics),
		beamform.WithLogger(log.Slog()),
	}
	if opts.normalize {
		bfOpts = append(bfOpts, beamform.WithNormalize())
	}
	out, err := beamform.DelayAndSumContext(ctx, geom, signals, angles, weights, opts.sampleRate, bfOpts...)
	if err != nil {
		return err
	}

	res, err := pattern.Analyze(out, angles, pattern.Config{
		Metric:     opts.metric,
		Frequency:  opts.f0,
		SampleRate: opts.sampleRate,
	})
	if err != nil {
		return err
	}
	if err := printPattern(stdout, res); err != nil {
		return err
	}
	if err := printSummary(stdout, opts, res, out.Row(res.MaxIndex), len(pulse)); err != nil {
		return err
	}
	if opts.metrics {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		return printMetrics(stdout, families)
	}
	return nil
}

func printPattern(w io.Writer, res pattern.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Angle [deg]\tLevel\tLevel [dB]\t\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----------\t-----\t----------\t\n"); err != nil {
		return err
	}
	for _, p := range res.Points {
		if _, err := fmt.Fprintf(tw, "%.1f\t%.6g\t%.2f\t%s\n",
			core.RadToDeg(p.Angle), p.Level, p.Level_dB, bar(p.Level_dB)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// bar renders a level between -40 and 0 dB as up to 40 characters.
func bar(db float64) string {
	n := int(math.Round(core.Clamp(db+40, 0, 40)))
	return strings.Repeat("#", n)
}

func printSummary(w io.Writer, opts options, res pattern.Result, best []float64, pulseLen int) error {
	if _, err := fmt.Fprintf(w, "\nestimated DoA: %.1f deg (true %.1f deg), -3 dB width: %.1f deg\n",
		core.RadToDeg(res.Estimate), opts.doa, core.RadToDeg(res.Width3dB)); err != nil {
		return err
	}

	from, to, noiseFrom, noiseTo, ok := analysisWindows(opts, pulseLen, len(best))
	if !ok {
		return nil
	}
	pnr, err := pattern.PeakToNoise(best, from, to, noiseFrom, noiseTo)
	if err != nil {
		if errors.Is(err, core.ErrNumericDegeneracy) {
			return nil
		}
		return err
	}
	_, err = fmt.Fprintf(w, "peak-to-noise at estimate: %.1f dB\n", pnr)
	return err
}

// analysisWindows returns the sample range holding the aligned pulse and a
// noise-only range after it. ok is false when either range is too short.
func analysisWindows(opts options, pulseLen, n int) (from, to, noiseFrom, noiseTo int, ok bool) {
	const minNoise = 16

	from = max(0, int(math.Floor(opts.onset*opts.sampleRate)))
	to = min(n, from+pulseLen)
	noiseFrom = min(n, to+pulseLen/4)
	noiseTo = n
	if to-from < 1 || noiseTo-noiseFrom < minNoise {
		return 0, 0, 0, 0, false
	}
	return from, to, noiseFrom, noiseTo, true
}

func printMetrics(w io.Writer, families []*dto.MetricFamily) error {
	if _, err := fmt.Fprintln(w, "\nmetrics:"); err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			var value string
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				value = fmt.Sprintf("%g", m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%.6fs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", name, value); err != nil {
				return err
			}
		}
	}
	return nil
}
