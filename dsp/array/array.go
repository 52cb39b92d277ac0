// Package array describes the geometry of uniform linear sensor arrays.
//
// A [ULA] places an odd number of sensors at equal spacing along the x axis,
// symmetric about the origin, with the center sensor at (0, 0). Sensor m has
// index m-(M-1)/2 and lies at x = index·d, y = 0.
package array

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beamform/dsp/core"
)

// ULA is an immutable uniform linear array.
type ULA struct {
	length  float64
	count   int
	spacing float64
	indices []int
	x, y    []float64
}

// NewULA builds an array of count sensors spread over length meters.
// count must be a positive odd integer and length must be positive and finite.
// A single-sensor array has zero spacing and its sensor at the origin.
func NewULA(length float64, count int) (*ULA, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("array: length must be > 0: %v: %w", length, core.ErrInvalidConfiguration)
	}
	if count <= 0 {
		return nil, fmt.Errorf("array: sensor count must be > 0: %d: %w", count, core.ErrInvalidConfiguration)
	}
	if count%2 == 0 {
		return nil, fmt.Errorf("array: sensor count must be odd: %d: %w", count, core.ErrInvalidConfiguration)
	}

	a := &ULA{
		length:  length,
		count:   count,
		indices: make([]int, count),
		x:       make([]float64, count),
		y:       make([]float64, count),
	}
	if count > 1 {
		a.spacing = length / float64(count-1)
	}

	half := (count - 1) / 2
	for m := range a.indices {
		a.indices[m] = m - half
		a.x[m] = float64(a.indices[m]) * a.spacing
	}
	return a, nil
}

// Length returns the aperture L in meters.
func (a *ULA) Length() float64 { return a.length }

// Count returns the sensor count M.
func (a *ULA) Count() int { return a.count }

// Spacing returns the inter-sensor distance d, or 0 for a single sensor.
func (a *ULA) Spacing() float64 { return a.spacing }

// Center returns the index of the center sensor.
func (a *ULA) Center() int { return (a.count - 1) / 2 }

// Indices returns a copy of the signed sensor indices -(M-1)/2 … (M-1)/2.
func (a *ULA) Indices() []int {
	return append([]int(nil), a.indices...)
}

// Position returns the (x, y) coordinates of sensor m.
func (a *ULA) Position(m int) (x, y float64) {
	return a.x[m], a.y[m]
}

// Positions returns a new 2×M matrix; row 0 holds x and row 1 holds y.
func (a *ULA) Positions() *core.Matrix {
	pos, _ := core.NewMatrix(2, a.count)
	copy(pos.Row(0), a.x)
	copy(pos.Row(1), a.y)
	return pos
}

// Delays returns the plane-wave arrival delay of every sensor relative to the
// origin for a wave arriving from direction theta (radians) at speed c0:
//
//	Δt_m = -(x_m·cos θ + y_m·sin θ) / c0
//
// Synthesis delays sensors by Δt_m; steering toward θ advances them by the same amount.
func (a *ULA) Delays(theta, c0 float64) []float64 {
	out := make([]float64, a.count)
	a.DelaysInto(out, theta, c0)
	return out
}

// DelaysInto writes the delays of [ULA.Delays] into dst, which must have length Count.
func (a *ULA) DelaysInto(dst []float64, theta, c0 float64) {
	cos, sin := math.Cos(theta), math.Sin(theta)
	for m := range dst {
		dst[m] = -(a.x[m]*cos + a.y[m]*sin) / c0
	}
}

// MaxUnaliasedFrequency returns the highest frequency c0/(2d) the array
// samples without spatial aliasing. A single-sensor array has no spacing
// and reports [core.ErrNumericDegeneracy].
func (a *ULA) MaxUnaliasedFrequency(c0 float64) (float64, error) {
	if !(c0 > 0) {
		return 0, fmt.Errorf("array: sound speed must be > 0: %v: %w", c0, core.ErrInvalidConfiguration)
	}
	if a.count == 1 {
		return 0, fmt.Errorf("array: single sensor has no spacing: %w", core.ErrNumericDegeneracy)
	}
	return c0 / (2 * a.spacing), nil
}
