package delay

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Spectral writes src delayed by d samples into dst using a frequency-domain
// phase ramp, dst[n] = src(n - d). The transform length is padded to at
// least twice the span touched by the shift, so the circular delay of the
// FFT behaves like a linear one inside dst.
func Spectral(dst, src []float64, d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, d)
	}
	if len(src) == 0 {
		return ErrEmptyInput
	}
	if len(dst) == 0 {
		return nil
	}

	span := max(len(src), len(dst)) + int(math.Ceil(math.Abs(d)))
	fftSize := nextPowerOf2(2 * span)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("delay: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range src {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return fmt.Errorf("delay: forward FFT failed: %w", err)
	}

	half := fftSize / 2
	for k := range spectrum {
		switch {
		case k == half:
			// The Nyquist bin has no sign; keep it real.
			spectrum[k] *= complex(math.Cos(math.Pi*d), 0)
		default:
			f := float64(k) / float64(fftSize)
			if k > half {
				f -= 1
			}
			spectrum[k] *= cmplx.Exp(complex(0, -2*math.Pi*f*d))
		}
	}

	out := make([]complex128, fftSize)
	if err := plan.Inverse(out, spectrum); err != nil {
		return fmt.Errorf("delay: inverse FFT failed: %w", err)
	}

	for n := range dst {
		dst[n] = real(out[n])
	}
	return nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
