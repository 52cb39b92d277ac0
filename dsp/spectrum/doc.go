// Package spectrum measures single-frequency content of finite signals.
//
// The Goertzel filter evaluates one term of the discrete-time Fourier
// transform in O(N) without a full FFT. Beam patterns use it to read the
// carrier power of each beamformer output row.
package spectrum
