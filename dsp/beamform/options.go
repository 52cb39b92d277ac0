package beamform

import (
	"log/slog"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/interp"
)

// Option configures a beamformer run.
type Option func(*config)

type config struct {
	soundSpeed float64
	mode       interp.Mode
	sincN      int
	normalize  bool
	workers    int
	metrics    *Metrics
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		soundSpeed: core.DefaultSoundSpeed,
		mode:       interp.Hermite,
		workers:    1,
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

// WithSoundSpeed sets the propagation speed c0 in m/s.
func WithSoundSpeed(c0 float64) Option {
	return func(c *config) {
		c.soundSpeed = c0
	}
}

// WithInterpolation selects the fractional-delay kernel. Default is Hermite.
func WithInterpolation(mode interp.Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithSincN sets the one-sided tap count used by the Sinc kernel.
func WithSincN(halfN int) Option {
	return func(c *config) {
		c.sincN = halfN
	}
}

// WithNormalize divides every weight by the sensor count, so a matched
// look direction reproduces the pulse at unit gain.
func WithNormalize() Option {
	return func(c *config) {
		c.normalize = true
	}
}

// WithWorkers processes look directions on n goroutines. Values < 1 select one.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithMetrics records run counters and durations into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLogger emits a debug record per run to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
