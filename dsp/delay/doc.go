// Package delay time-shifts finite recordings by fractional sample counts.
//
// [Shift] and [Advance] evaluate the source on the shifted grid through an
// [interp.Interpolator]; [Spectral] applies a linear phase ramp in the
// frequency domain on a zero-padded copy. Both treat samples outside the
// source as zero, so content shifted out of the window is dropped and
// content shifted in is silence. Nothing wraps around.
package delay
