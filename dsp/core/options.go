package core

// DefaultSoundSpeed is the propagation speed used when none is configured,
// in m/s (sound in water).
const DefaultSoundSpeed = 1500.0

// ProcessorConfig defines the physical settings shared by synthesis and beamforming.
type ProcessorConfig struct {
	SampleRate float64
	SoundSpeed float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by the reference scenarios.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		SoundSpeed: DefaultSoundSpeed,
	}
}

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithSoundSpeed sets the propagation speed in m/s.
func WithSoundSpeed(c0 float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if c0 > 0 {
			cfg.SoundSpeed = c0
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
