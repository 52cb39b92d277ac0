// Package signal generates deterministic test signals and noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
// Noise draws advance a single seeded stream, so successive calls return
// independent realizations that repeat exactly for the same seed.
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the seed the noise stream was last reset to.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed restarts the noise stream from seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Sine generates a sine wave with the given starting phase in radians.
func (g *Generator) Sine(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

// Phase draws a uniformly distributed phase in [0, 2π) from the noise stream.
func (g *Generator) Phase() float64 {
	return 2 * math.Pi * g.rng.Float64()
}

// WhiteNoise generates uniform white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = (g.rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Gaussian generates zero-mean normally distributed noise with the given
// standard deviation.
func (g *Generator) Gaussian(stddev float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	if err := g.AddGaussian(out, stddev); err != nil {
		return nil, err
	}
	return out, nil
}

// AddGaussian adds zero-mean normally distributed noise to dst in place.
func (g *Generator) AddGaussian(dst []float64, stddev float64) error {
	if stddev < 0 || math.IsNaN(stddev) || math.IsInf(stddev, 0) {
		return fmt.Errorf("noise stddev must be finite and >= 0: %f", stddev)
	}
	for i := range dst {
		dst[i] += stddev * g.rng.NormFloat64()
	}
	return nil
}

// Power returns the mean square of data, or 0 when empty.
func Power(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return sum / float64(len(data))
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
