package pattern

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/spectrum"
	timestats "github.com/cwbudde/algo-beamform/stats/time"
)

// Metric selects how a row is reduced to a level.
type Metric int

const (
	// MetricPeak uses the peak absolute amplitude; dB values are 20·log10.
	MetricPeak Metric = iota
	// MetricEnergy uses the sum of squares; dB values are 10·log10.
	MetricEnergy
	// MetricCarrier uses the Goertzel power at Config.Frequency, giving the
	// narrowband pattern of the carrier; dB values are 10·log10.
	MetricCarrier
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricPeak:
		return "peak"
	case MetricEnergy:
		return "energy"
	case MetricCarrier:
		return "carrier"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric resolves "peak", "energy" or "carrier".
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "peak":
		return MetricPeak, nil
	case "energy":
		return MetricEnergy, nil
	case "carrier":
		return MetricCarrier, nil
	default:
		return MetricPeak, fmt.Errorf("pattern: unknown metric %q: %w", name, core.ErrInvalidConfiguration)
	}
}

// Config holds pattern analysis parameters.
type Config struct {
	Metric Metric
	// From and To bound the analyzed samples [From, To). Zero To selects
	// the full row.
	From, To int
	// Frequency and SampleRate in Hz configure MetricCarrier.
	Frequency, SampleRate float64
}

// Point is the pattern level at one look direction.
//
//nolint:revive
type Point struct {
	Angle    float64
	Level    float64
	Level_dB float64 // relative to the pattern maximum
}

// Result holds a beam pattern and the estimates derived from it.
type Result struct {
	Points []Point
	// MaxIndex is the index of the strongest direction (first on ties).
	MaxIndex int
	// Estimate is the direction-of-arrival estimate in radians.
	Estimate float64
	// Width3dB is the angular extent of the contiguous run of directions
	// around the maximum that stay within 3 dB of it.
	Width3dB float64
}

// Analyzer reduces beamformer output to a beam pattern.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates a pattern analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze is a one-shot pattern analysis.
func Analyze(out *core.Matrix, angles []float64, cfg Config) (Result, error) {
	return NewAnalyzer(cfg).Analyze(out, angles)
}

// Analyze computes the beam pattern of out, whose rows correspond to angles.
func (a *Analyzer) Analyze(out *core.Matrix, angles []float64) (Result, error) {
	if out == nil {
		return Result{}, fmt.Errorf("pattern: nil output matrix: %w", core.ErrInvalidConfiguration)
	}
	if out.Rows() != len(angles) {
		return Result{}, fmt.Errorf("pattern: %d output rows for %d angles: %w",
			out.Rows(), len(angles), core.ErrInvalidConfiguration)
	}
	var tone *spectrum.Goertzel
	switch a.cfg.Metric {
	case MetricPeak, MetricEnergy:
	case MetricCarrier:
		var err error
		if tone, err = spectrum.NewGoertzel(a.cfg.Frequency, a.cfg.SampleRate); err != nil {
			return Result{}, fmt.Errorf("pattern: %w", err)
		}
	default:
		return Result{}, fmt.Errorf("pattern: unsupported %v: %w", a.cfg.Metric, core.ErrInvalidConfiguration)
	}

	from, to := a.cfg.From, a.cfg.To
	if to == 0 {
		to = out.Cols()
	}

	points := make([]Point, len(angles))
	maxIdx := 0
	for i, theta := range angles {
		s, err := timestats.Window(out.Row(i), from, to)
		if err != nil {
			return Result{}, fmt.Errorf("pattern: %w", err)
		}
		var level float64
		switch a.cfg.Metric {
		case MetricPeak:
			level = s.Peak
		case MetricEnergy:
			level = s.Energy
		case MetricCarrier:
			tone.Reset()
			tone.Process(out.Row(i)[from:to])
			level = tone.Power()
		}
		points[i] = Point{Angle: theta, Level: level}
		if level > points[maxIdx].Level {
			maxIdx = i
		}
	}

	peak := points[maxIdx].Level
	if peak == 0 {
		return Result{}, fmt.Errorf("pattern: output is silent in every direction: %w", core.ErrNumericDegeneracy)
	}
	for i := range points {
		points[i].Level_dB = a.toDB(points[i].Level / peak)
	}

	return Result{
		Points:   points,
		MaxIndex: maxIdx,
		Estimate: angles[maxIdx],
		Width3dB: width(points, maxIdx, -3),
	}, nil
}

func (a *Analyzer) toDB(ratio float64) float64 {
	if a.cfg.Metric == MetricPeak {
		return core.LinearToDB(ratio)
	}
	return core.LinearPowerToDB(ratio)
}

// width returns the angular span of the run of points around center whose
// level stays at or above floor dB.
func width(points []Point, center int, floor float64) float64 {
	lo, hi := center, center
	for lo > 0 && points[lo-1].Level_dB >= floor {
		lo--
	}
	for hi < len(points)-1 && points[hi+1].Level_dB >= floor {
		hi++
	}
	return math.Abs(points[hi].Angle - points[lo].Angle)
}

// PeakToNoise returns the ratio in dB between the peak amplitude of
// row[signalFrom:signalTo] and the RMS of row[noiseFrom:noiseTo].
func PeakToNoise(row []float64, signalFrom, signalTo, noiseFrom, noiseTo int) (float64, error) {
	sig, err := timestats.Window(row, signalFrom, signalTo)
	if err != nil {
		return 0, fmt.Errorf("pattern: signal window: %w", err)
	}
	noise, err := timestats.Window(row, noiseFrom, noiseTo)
	if err != nil {
		return 0, fmt.Errorf("pattern: noise window: %w", err)
	}
	if noise.RMS == 0 {
		return 0, fmt.Errorf("pattern: noise window is silent: %w", core.ErrNumericDegeneracy)
	}
	return core.LinearToDB(sig.Peak / noise.RMS), nil
}
