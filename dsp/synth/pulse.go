package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/signal"
	"github.com/cwbudde/algo-beamform/dsp/window"
)

// minPulseSamples keeps the envelope long enough to vanish at both ends
// and still have a nonzero middle.
const minPulseSamples = 3

// envelopeEdgeTolerance bounds the envelope endpoints relative to its peak.
const envelopeEdgeTolerance = 1e-9

// NarrowbandPulse returns round(duration·fs) samples of a tone burst,
// sample i being a0·w(i)·sin(2π·f0·i/fs + φ) for a window w that vanishes at
// both ends. The phase φ is 0 unless set by [WithPhase] or [WithRandomPhase].
func NarrowbandPulse(a0, duration, f0, fs float64, opts ...Option) ([]float64, error) {
	if !core.IsFinite(a0) {
		return nil, fmt.Errorf("synth: pulse amplitude must be finite: %v: %w", a0, core.ErrInvalidConfiguration)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("synth: pulse duration must be > 0: %v: %w", duration, core.ErrInvalidConfiguration)
	}
	if !(f0 > 0) || math.IsInf(f0, 0) {
		return nil, fmt.Errorf("synth: center frequency must be > 0: %v: %w", f0, core.ErrInvalidConfiguration)
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("synth: sample rate must be > 0: %v: %w", fs, core.ErrInvalidConfiguration)
	}

	n := int(math.Round(duration * fs))
	if n < minPulseSamples {
		return nil, fmt.Errorf("synth: pulse of %v s at %v Hz has %d samples, need >= %d: %w",
			duration, fs, n, minPulseSamples, core.ErrInvalidConfiguration)
	}

	cfg := applyOptions(opts)

	env := window.Generate(cfg.envelope, n, cfg.envOpts...)
	if err := checkEnvelope(env, cfg.envelope); err != nil {
		return nil, err
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(fs)},
		signal.WithSeed(cfg.seed),
	)
	phase := cfg.phase
	if cfg.randomPhase {
		phase = gen.Phase()
	}

	carrier, err := gen.Sine(f0, a0, phase, n)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}

	pulse, err := window.ApplyCoefficients(carrier, env)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	return pulse, nil
}

func checkEnvelope(env []float64, t window.Type) error {
	peak := 0.0
	for _, v := range env {
		if v < 0 {
			return fmt.Errorf("synth: %v envelope is negative: %w", t, core.ErrInvalidConfiguration)
		}
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		return fmt.Errorf("synth: %v envelope is zero: %w", t, core.ErrInvalidConfiguration)
	}
	if env[0] > envelopeEdgeTolerance*peak || env[len(env)-1] > envelopeEdgeTolerance*peak {
		return fmt.Errorf("synth: %v envelope does not vanish at its ends: %w", t, core.ErrInvalidConfiguration)
	}
	return nil
}
