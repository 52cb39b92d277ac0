package beamform_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/array"
	"github.com/cwbudde/algo-beamform/dsp/beamform"
	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/synth"
)

func ExampleDelayAndSum() {
	const fs = 48000.0

	geom, _ := array.NewULA(1.4, 15)
	pulse, _ := synth.NarrowbandPulse(1, 0.01, 5000, fs)
	signals, _ := synth.ArraySignals(geom, pulse, synth.Scene{
		Onset:      1.0 / 64,
		Duration:   0.05,
		Direction:  core.DegToRad(45),
		SampleRate: fs,
		SNR:        synth.NoNoise,
	})

	angles, _ := beamform.SteeringAngles(5)
	out, _ := beamform.DelayAndSum(geom, signals, angles, beamform.UniformWeights(15), fs, beamform.WithNormalize())

	best, bestPeak := 0, 0.0
	for i := range angles {
		for _, v := range out.Row(i) {
			if math.Abs(v) > bestPeak {
				best, bestPeak = i, math.Abs(v)
			}
		}
	}
	fmt.Printf("strongest direction: %.0f deg\n", core.RadToDeg(angles[best]))
	// Output: strongest direction: 45 deg
}
