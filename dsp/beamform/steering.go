package beamform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/window"
)

// SteeringAngles returns n look directions evenly covering [0, π] radians,
// endpoints included. n == 1 yields {0}.
func SteeringAngles(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("beamform: steering angle count must be > 0: %d: %w", n, core.ErrInvalidConfiguration)
	}
	out := make([]float64, n)
	if n == 1 {
		return out, nil
	}
	step := math.Pi / float64(n-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	out[n-1] = math.Pi
	return out, nil
}

// UniformWeights returns m unit weights.
func UniformWeights(m int) []float64 {
	if m <= 0 {
		return nil
	}
	out := make([]float64, m)
	for i := range out {
		out[i] = 1
	}
	return out
}

// ShadingWeights returns m array shading weights drawn from window t.
// A single sensor gets the window's peak value.
func ShadingWeights(t window.Type, m int, opts ...window.Option) ([]float64, error) {
	if m < 1 {
		return nil, fmt.Errorf("beamform: sensor count must be > 0: %d: %w", m, core.ErrInvalidConfiguration)
	}
	if _, err := window.ParseType(t.String()); err != nil {
		return nil, fmt.Errorf("beamform: %v: %w", err, core.ErrInvalidConfiguration)
	}
	return window.Generate(t, m, opts...), nil
}
