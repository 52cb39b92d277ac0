package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/window"
)

func TestNarrowbandPulseShape(t *testing.T) {
	const (
		a0 = 2.0
		tp = 0.01
		f0 = 5000.0
		fs = 48000.0
	)
	p, err := NarrowbandPulse(a0, tp, f0, fs)
	require.NoError(t, err)
	require.Len(t, p, 480)

	assert.InDelta(t, 0, p[0], 1e-12, "first sample")
	assert.InDelta(t, 0, p[len(p)-1], 1e-12, "last sample")

	peak, peakAt := 0.0, 0
	for i, v := range p {
		assert.LessOrEqual(t, math.Abs(v), a0+1e-12)
		if math.Abs(v) > peak {
			peak, peakAt = math.Abs(v), i
		}
	}
	assert.Greater(t, peak, 0.9*a0)
	assert.InDelta(t, len(p)/2, peakAt, float64(len(p))/10, "peak near the center")

	// Most of the energy sits in the middle half of the pulse.
	var total, middle float64
	for i, v := range p {
		total += v * v
		if i >= len(p)/4 && i < 3*len(p)/4 {
			middle += v * v
		}
	}
	assert.Greater(t, middle/total, 0.8)
}

func TestNarrowbandPulseMatchesFormula(t *testing.T) {
	const fs = 8000.0
	p, err := NarrowbandPulse(1, 0.004, 1000, fs)
	require.NoError(t, err)

	w := window.Generate(window.TypeHann, len(p))
	for i, v := range p {
		want := w[i] * math.Sin(2*math.Pi*1000*float64(i)/fs)
		assert.InDelta(t, want, v, 1e-12, "sample %d", i)
	}
}

func TestNarrowbandPulseValidation(t *testing.T) {
	tests := []struct {
		name            string
		a0, tp, f0, fs float64
	}{
		{name: "zero duration", a0: 1, tp: 0, f0: 1000, fs: 48000},
		{name: "negative frequency", a0: 1, tp: 0.01, f0: -1, fs: 48000},
		{name: "zero sample rate", a0: 1, tp: 0.01, f0: 1000, fs: 0},
		{name: "NaN amplitude", a0: math.NaN(), tp: 0.01, f0: 1000, fs: 48000},
		{name: "too short", a0: 1, tp: 1e-5, f0: 1000, fs: 48000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NarrowbandPulse(tt.a0, tt.tp, tt.f0, tt.fs)
			assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
		})
	}
}

func TestNarrowbandPulseEnvelopes(t *testing.T) {
	for _, env := range []window.Type{window.TypeBlackman, window.TypeTriangle, window.TypeCosine, window.TypeTukey} {
		p, err := NarrowbandPulse(1, 0.01, 3000, 48000, WithEnvelope(env, window.WithAlpha(0.5)))
		require.NoError(t, err, env.String())
		assert.InDelta(t, 0, p[0], 1e-9)
		assert.InDelta(t, 0, p[len(p)-1], 1e-9)
	}

	for _, env := range []window.Type{window.TypeHamming, window.TypeRectangular, window.TypeGauss} {
		_, err := NarrowbandPulse(1, 0.01, 3000, 48000, WithEnvelope(env))
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration, env.String())
	}
}

func TestNarrowbandPulsePhase(t *testing.T) {
	p, err := NarrowbandPulse(1, 0.01, 1000, 48000, WithPhase(math.Pi/2))
	require.NoError(t, err)
	q, err := NarrowbandPulse(1, 0.01, 1000, 48000)
	require.NoError(t, err)
	assert.NotEqual(t, p[10], q[10])

	r1, err := NarrowbandPulse(1, 0.01, 1000, 48000, WithRandomPhase(), WithSeed(5))
	require.NoError(t, err)
	r2, err := NarrowbandPulse(1, 0.01, 1000, 48000, WithRandomPhase(), WithSeed(5))
	require.NoError(t, err)
	r3, err := NarrowbandPulse(1, 0.01, 1000, 48000, WithRandomPhase(), WithSeed(6))
	require.NoError(t, err)

	assert.Equal(t, r1, r2, "same seed, same phase")
	assert.NotEqual(t, r1, r3, "different seed, different phase")
}
