// Package interp provides the fractional interpolation kernels used to read
// finite signals between samples.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:    2-point linear interpolation
//   - [Hermite4]:   4-point cubic Hermite (good default)
//   - [Lagrange4]:  4-point cubic Lagrange
//   - Lanczos3:     6-point Lanczos windowed-sinc (a = 3)
//   - Sinc:         variable-width Blackman-windowed sinc (highest quality)
//
// An [Interpolator] reads a signal at a fractional index with the selected
// [Mode]. Samples outside the signal are treated as zero.
package interp
