package synth

import (
	"github.com/cwbudde/algo-beamform/dsp/interp"
	"github.com/cwbudde/algo-beamform/dsp/window"
)

// Option configures pulse and array-signal synthesis.
type Option func(*config)

type config struct {
	seed        int64
	randomPhase bool
	phase       float64
	envelope    window.Type
	envOpts     []window.Option
	mode        interp.Mode
	spectral    bool
	strict      bool
}

func defaultConfig() config {
	return config{
		seed:     1,
		envelope: window.TypeHann,
		mode:     interp.Hermite,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSeed seeds the noise stream and the random carrier phase.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithPhase sets the carrier phase in radians at the first pulse sample.
func WithPhase(phase float64) Option {
	return func(c *config) {
		c.phase = phase
		c.randomPhase = false
	}
}

// WithRandomPhase draws the carrier phase uniformly from [0, 2π) using the seed.
func WithRandomPhase() Option {
	return func(c *config) {
		c.randomPhase = true
	}
}

// WithEnvelope selects the pulse envelope. The window must vanish at both
// ends (Hann, Blackman, Tukey, triangle, cosine).
func WithEnvelope(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.envelope = t
		c.envOpts = opts
	}
}

// WithInterpolation selects the kernel used for sub-sample pulse placement.
func WithInterpolation(mode interp.Mode) Option {
	return func(c *config) {
		c.mode = mode
		c.spectral = false
	}
}

// WithSpectralDelay places pulses with a frequency-domain phase ramp instead
// of time-domain interpolation.
func WithSpectralDelay() Option {
	return func(c *config) {
		c.spectral = true
	}
}

// WithStrictPlacement rejects scenes in which any part of a pulse would be
// clipped by the recording window.
func WithStrictPlacement() Option {
	return func(c *config) {
		c.strict = true
	}
}
