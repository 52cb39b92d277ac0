// Package synth synthesizes the recordings of a uniform linear array
// illuminated by a narrowband plane wave.
//
// [NarrowbandPulse] builds a windowed tone burst. [ArraySignals] places a
// copy of that pulse in every sensor row at the onset time plus the sensor's
// plane-wave delay, with sub-sample placement, and optionally adds white
// Gaussian noise at a signal-to-noise ratio measured against the pulse power.
//
// Placement policy: parts of a pulse that fall outside the recording window
// [0, T) are clipped. A scene in which any sensor would lose the whole pulse
// is rejected with [core.ErrInvalidConfiguration]. [WithStrictPlacement]
// rejects any clipping.
package synth
