package testutil

import "math"

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ToneBurst returns a signal of n samples holding a Hann-windowed sine of
// burstLen samples at freq cycles per sample, starting at index 0.
func ToneBurst(n, burstLen int, freq float64) []float64 {
	out := make([]float64, n)
	if burstLen < 2 {
		return out
	}
	for i := 0; i < burstLen && i < n; i++ {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(burstLen-1))
		out[i] = w * math.Sin(2*math.Pi*freq*float64(i))
	}
	return out
}

// PeakAbs returns the largest absolute value in x[from:to], clamped to the slice.
func PeakAbs(x []float64, from, to int) float64 {
	from = max(from, 0)
	to = min(to, len(x))
	peak := 0.0
	for i := from; i < to; i++ {
		peak = math.Max(peak, math.Abs(x[i]))
	}
	return peak
}
