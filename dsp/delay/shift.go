package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/interp"
)

var (
	// ErrInvalidDelay is returned for NaN or infinite delays.
	ErrInvalidDelay = errors.New("delay: delay must be finite")
	// ErrEmptyInput is returned when the source signal is empty.
	ErrEmptyInput = errors.New("delay: empty input")
)

var defaultInterpolator, _ = interp.New(interp.Hermite)

// Shift writes src delayed by d samples into dst, dst[n] = src(n - d).
// Positive d moves content later in time. dst and src may differ in length
// but must not overlap. A nil interpolator selects cubic Hermite.
func Shift(dst, src []float64, d float64, p *interp.Interpolator) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, d)
	}
	if len(src) == 0 {
		return ErrEmptyInput
	}
	if p == nil {
		p = defaultInterpolator
	}

	for n := range dst {
		dst[n] = p.At(src, float64(n)-d)
	}
	return nil
}

// Advance writes src advanced by d samples into dst, dst[n] = src(n + d).
func Advance(dst, src []float64, d float64, p *interp.Interpolator) error {
	return Shift(dst, src, -d, p)
}

// Seconds converts a delay in seconds to samples at sampleRate.
func Seconds(seconds, sampleRate float64) float64 {
	return seconds * sampleRate
}
