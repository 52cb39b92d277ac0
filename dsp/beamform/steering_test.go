package beamform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-beamform/dsp/core"
	"github.com/cwbudde/algo-beamform/dsp/window"
)

func TestSteeringAngles(t *testing.T) {
	angles, err := SteeringAngles(5)
	require.NoError(t, err)
	require.Len(t, angles, 5)
	assert.Equal(t, 0.0, angles[0])
	assert.InDelta(t, math.Pi/4, angles[1], 1e-15)
	assert.InDelta(t, math.Pi/2, angles[2], 1e-15)
	assert.Equal(t, math.Pi, angles[4])

	for i := 1; i < len(angles); i++ {
		assert.Greater(t, angles[i], angles[i-1])
	}

	one, err := SteeringAngles(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, one)

	_, err = SteeringAngles(0)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestUniformWeights(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, UniformWeights(3))
	assert.Nil(t, UniformWeights(0))
}

func TestShadingWeights(t *testing.T) {
	w, err := ShadingWeights(window.TypeHann, 5)
	require.NoError(t, err)
	require.Len(t, w, 5)
	assert.InDelta(t, 0, w[0], 1e-15)
	assert.InDelta(t, 1, w[2], 1e-15)
	assert.InDelta(t, w[1], w[3], 1e-15)

	single, err := ShadingWeights(window.TypeHann, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, single[0], 1e-15)

	rect, err := ShadingWeights(window.TypeRectangular, 4)
	require.NoError(t, err)
	assert.Equal(t, UniformWeights(4), rect)

	_, err = ShadingWeights(window.TypeHann, 0)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = ShadingWeights(window.Type(42), 3)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}
