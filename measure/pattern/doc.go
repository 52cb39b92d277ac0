// Package pattern analyzes beamformer output over look directions.
//
// Each output row is reduced to one level over an optional sample window:
// peak amplitude, energy, or the Goertzel power of the carrier. The reduced
// levels form the beam pattern; its maximum is the direction-of-arrival
// estimate.
//
// # Usage
//
//	a := pattern.NewAnalyzer(pattern.Config{Metric: pattern.MetricEnergy})
//	res, err := a.Analyze(out, angles)
//	fmt.Printf("DoA = %.1f deg, -3 dB width = %.1f deg\n",
//		core.RadToDeg(res.Estimate), core.RadToDeg(res.Width3dB))
package pattern
