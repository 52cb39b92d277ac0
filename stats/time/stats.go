// Package time computes time-domain statistics of sensor and beamformer rows.
package time

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

// Stats holds time-domain statistics of one row.
//
//nolint:revive
type Stats struct {
	Length         int
	Mean           float64
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Power          float64 // energy / length
	Variance       float64
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass. The variance uses
// Welford's update.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		mean, m2 float64
		sumSq    float64
		peak     float64
		peakPos  int
	)
	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	s := Stats{
		Length:         n,
		Mean:           mean,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           peak,
		PeakPos:        peakPos,
		Peak_dB:        core.LinearToDB(peak),
		CrestFactor_dB: math.Inf(-1),
		Energy:         sumSq,
		Power:          sumSq / nf,
		Variance:       m2 / nf,
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = core.LinearToDB(s.CrestFactor)
	}
	return s
}

// Window computes Stats over signal[from:to]. PeakPos is reported relative
// to the start of signal.
func Window(signal []float64, from, to int) (Stats, error) {
	if from < 0 || to > len(signal) || from >= to {
		return emptyStats(), fmt.Errorf("stats: window [%d, %d) outside signal of %d samples: %w",
			from, to, len(signal), core.ErrInvalidConfiguration)
	}
	s := Calculate(signal[from:to])
	s.PeakPos += from
	return s, nil
}

// Rows computes Stats for every row of m.
func Rows(m *core.Matrix) []Stats {
	if m == nil {
		return nil
	}
	out := make([]Stats, m.Rows())
	for i := range out {
		out[i] = Calculate(m.Row(i))
	}
	return out
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak, _ := PeakPos(signal)
	return peak
}

// PeakPos returns the peak absolute amplitude and its first index.
// An empty signal yields (0, -1).
func PeakPos(signal []float64) (float64, int) {
	if len(signal) == 0 {
		return 0, -1
	}

	peak, pos := math.Abs(signal[0]), 0
	for i, x := range signal[1:] {
		if a := math.Abs(x); a > peak {
			peak, pos = a, i+1
		}
	}

	return peak, pos
}

// Energy returns the sum of squares of the signal.
func Energy(signal []float64) float64 {
	var sum float64
	for _, x := range signal {
		sum += x * x
	}
	return sum
}
