package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/array"
	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/delay"
	"github.com/cwbudde/algo-beamform/dsp/interp"
	"github.com/cwbudde/algo-beamform/dsp/signal"
)

// NoNoise disables additive noise when used as [Scene.SNR].
var NoNoise = math.Inf(1)

// Scene holds the scalar parameters of a synthesized recording.
type Scene struct {
	// Onset is the time in seconds at which the pulse starts at the array origin.
	Onset float64
	// Duration is the recording length T in seconds; rows hold round(T·fs) samples.
	Duration float64
	// Direction is the direction of arrival θ0 in radians.
	Direction float64
	// SampleRate is fs in Hz.
	SampleRate float64
	// SoundSpeed is c0 in m/s. Zero selects core.DefaultSoundSpeed.
	SoundSpeed float64
	// SNR is the pulse-to-noise power ratio in dB. NoNoise disables noise.
	// The zero value means 0 dB, not silence.
	SNR float64
}

func (s Scene) soundSpeed() float64 {
	if s.SoundSpeed == 0 {
		return core.DefaultSoundSpeed
	}
	return s.SoundSpeed
}

// Samples returns the row length round(Duration·SampleRate).
func (s Scene) Samples() int {
	return int(math.Round(s.Duration * s.SampleRate))
}

func (s Scene) validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("synth: "+format+": %w", append(args, core.ErrInvalidConfiguration)...)
	}
	switch {
	case !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0):
		return bad("sample rate must be > 0: %v", s.SampleRate)
	case !(s.Duration > 0) || math.IsInf(s.Duration, 0):
		return bad("duration must be > 0: %v", s.Duration)
	case s.Samples() < 1:
		return bad("duration %v s holds no samples at %v Hz", s.Duration, s.SampleRate)
	case !core.IsFinite(s.Onset):
		return bad("onset must be finite: %v", s.Onset)
	case !core.IsFinite(s.Direction):
		return bad("direction must be finite: %v", s.Direction)
	case !(s.soundSpeed() > 0) || math.IsInf(s.soundSpeed(), 0):
		return bad("sound speed must be > 0: %v", s.SoundSpeed)
	case math.IsNaN(s.SNR) || math.IsInf(s.SNR, -1):
		return bad("SNR must be a number above -Inf dB: %v", s.SNR)
	}
	return nil
}

// ArraySignals returns the M×N recording of pulse arriving at geom from
// scene.Direction. Row m holds the pulse starting at
// scene.Onset + Δt_m with Δt_m from [array.ULA.Delays], placed with
// fractional-sample accuracy, plus independent Gaussian noise of power
// P_pulse/10^(SNR/10) on every sample when scene.SNR is finite.
func ArraySignals(geom *array.ULA, pulse []float64, scene Scene, opts ...Option) (*core.Matrix, error) {
	if geom == nil {
		return nil, fmt.Errorf("synth: nil array geometry: %w", core.ErrInvalidConfiguration)
	}
	if len(pulse) == 0 {
		return nil, fmt.Errorf("synth: empty pulse: %w", core.ErrInvalidConfiguration)
	}
	for i, v := range pulse {
		if !core.IsFinite(v) {
			return nil, fmt.Errorf("synth: pulse sample %d is not finite: %w", i, core.ErrInvalidConfiguration)
		}
	}
	if err := scene.validate(); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	fs := scene.SampleRate
	n := scene.Samples()

	delays := geom.Delays(scene.Direction, scene.soundSpeed())
	starts := make([]float64, len(delays))
	for m, dt := range delays {
		starts[m] = delay.Seconds(scene.Onset+dt, fs)
		if err := checkPlacement(m, starts[m], len(pulse), n, cfg.strict); err != nil {
			return nil, err
		}
	}

	var ip *interp.Interpolator
	if !cfg.spectral {
		var err error
		if ip, err = interp.New(cfg.mode); err != nil {
			return nil, fmt.Errorf("synth: %v: %w", err, core.ErrInvalidConfiguration)
		}
	}

	out, err := core.NewMatrix(geom.Count(), n)
	if err != nil {
		return nil, err
	}

	for m, start := range starts {
		row := out.Row(m)
		if cfg.spectral {
			err = delay.Spectral(row, pulse, start)
		} else {
			err = delay.Shift(row, pulse, start, ip)
		}
		if err != nil {
			return nil, fmt.Errorf("synth: placing pulse on sensor %d: %w", m, err)
		}
	}

	if math.IsInf(scene.SNR, 1) {
		return out, nil
	}

	stddev := math.Sqrt(signal.Power(pulse) / core.DBPowerToLinear(scene.SNR))
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(fs)},
		signal.WithSeed(cfg.seed),
	)
	for m := 0; m < out.Rows(); m++ {
		if err := gen.AddGaussian(out.Row(m), stddev); err != nil {
			return nil, fmt.Errorf("synth: %w", err)
		}
	}
	return out, nil
}

// checkPlacement applies the clipping policy to a pulse of pulseLen samples
// whose first sample lands at fractional index start of an n-sample row.
func checkPlacement(m int, start float64, pulseLen, n int, strict bool) error {
	end := start + float64(pulseLen-1)
	last := float64(n - 1)

	if strict && (start < 0 || end > last) {
		return fmt.Errorf("synth: pulse on sensor %d spans samples [%.2f, %.2f] outside [0, %d]: %w",
			m, start, end, n-1, core.ErrInvalidConfiguration)
	}
	if end <= 0 || start >= last {
		return fmt.Errorf("synth: pulse on sensor %d at samples [%.2f, %.2f] falls entirely outside [0, %d]: %w",
			m, start, end, n-1, core.ErrInvalidConfiguration)
	}
	return nil
}
