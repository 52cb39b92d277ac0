// Package beamform implements time-domain delay-and-sum beamforming for a
// uniform linear array.
//
// For every look direction θ the recorded sensor rows are advanced by the
// plane-wave delays of [array.ULA.Delays], weighted and summed in ascending
// sensor order:
//
//	out[i, n] = Σ_m w[m] · x_m(n + τ_{i,m}·fs)
//
// Fractional positions are read through an [interp.Interpolator] and
// samples outside the recording are zero. Output rows depend only on
// read-only inputs, so look directions may be processed by several
// workers without changing a single bit of the result.
package beamform
