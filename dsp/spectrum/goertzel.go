package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

// Goertzel accumulates samples and reports the power of one frequency.
//
// Power returns |X(f)|² of all samples processed since the last Reset,
// where X is the discrete-time Fourier transform of the block. For a
// sinusoid of amplitude A over N samples the power is close to (A·N/2)²,
// so Amplitude reports 2·|X|/N. Blocks that do not hold an integer number
// of cycles leak; window the input when that matters.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel returns an analyzer for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v: %w", sampleRate, core.ErrInvalidConfiguration)
	}
	if !(frequency >= 0) || frequency > sampleRate/2 {
		return nil, fmt.Errorf("spectrum: frequency must be within [0, %v]: %v: %w",
			sampleRate/2, frequency, core.ErrInvalidConfiguration)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// Process feeds a block of samples.
func (g *Goertzel) Process(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X(f)|².
func (g *Goertzel) Power() float64 {
	return math.Max(0, g.s0*g.s0+g.s1*g.s1-g.coeff*g.s0*g.s1)
}

// Amplitude estimates the amplitude of a sinusoid at the analyzer
// frequency, 2·|X(f)|/N. It is 0 before any sample has been processed.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(g.Power()) / float64(g.n)
}

// Count returns the number of samples processed since the last Reset.
func (g *Goertzel) Count() int { return g.n }

// Frequency returns the analyzer frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the sample rate in Hz.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// BlockPower computes the Goertzel power of input at frequency in one shot.
func BlockPower(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.Process(input)
	return g.Power(), nil
}
