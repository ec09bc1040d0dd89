package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrich/aggpack/internal/model"
)

func square(x, y, size float64) model.Outline {
	return model.Outline{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}, {X: x, Y: y},
	}
}

func TestOutlineDistance_SeparatedSquares(t *testing.T) {
	a := square(0, 0, 2)
	b := square(5, 0, 2)

	d, err := OutlineDistance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-9, "facing edges are 3 apart")
}

func TestOutlineDistance_DiagonalGap(t *testing.T) {
	a := square(0, 0, 2)
	b := square(4, 4, 2)

	d, err := OutlineDistance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Sqrt2, d, 1e-9, "nearest corners are (2,2) and (4,4)")
}

func TestOutlineDistance_OverlapIsZero(t *testing.T) {
	a := square(0, 0, 3)
	b := square(2, 2, 3)

	d, err := OutlineDistance(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestOutlineDistance_ContainmentIsZero(t *testing.T) {
	outer := square(0, 0, 10)
	inner := square(4, 4, 1)

	d, err := OutlineDistance(outer, inner)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d, "a fully contained outline has zero distance")

	// Symmetric.
	d, err = OutlineDistance(inner, outer)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestOutlineDistance_TouchingIsZero(t *testing.T) {
	a := square(0, 0, 2)
	b := square(2, 0, 2)

	d, err := OutlineDistance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestOutlineDistance_RejectsDegenerate(t *testing.T) {
	_, err := OutlineDistance(model.Outline{{X: 0, Y: 0}}, square(0, 0, 1))
	assert.Error(t, err)

	_, err = OutlineDistance(square(0, 0, 1), model.Outline{})
	assert.Error(t, err)
}

func TestPointInPolygon(t *testing.T) {
	ring := square(0, 0, 4)

	assert.True(t, PointInPolygon(model.Point2D{X: 2, Y: 2}, ring))
	assert.False(t, PointInPolygon(model.Point2D{X: 5, Y: 2}, ring))
	assert.False(t, PointInPolygon(model.Point2D{X: -1, Y: -1}, ring))
}

func TestBuffer_ExpandsOutward(t *testing.T) {
	ring := square(0, 0, 4)
	halo := Buffer(ring, 1)

	require.NotNil(t, halo)
	assert.True(t, halo.Closed())
	assert.Len(t, halo, len(ring))

	b := halo.Bounds()
	assert.InDelta(t, -1.0, b.MinX, 1e-9)
	assert.InDelta(t, -1.0, b.MinY, 1e-9)
	assert.InDelta(t, 5.0, b.MaxX, 1e-9)
	assert.InDelta(t, 5.0, b.MaxY, 1e-9)
}

func TestBuffer_WindingIndependent(t *testing.T) {
	ccw := square(0, 0, 4)
	cw := model.Outline{
		{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0},
	}

	for _, ring := range []model.Outline{ccw, cw} {
		halo := Buffer(ring, 0.5)
		require.NotNil(t, halo)
		assert.Greater(t, PolygonArea(halo), PolygonArea(ring), "halo must grow the ring")
	}
}

func TestBuffer_NoThicknessNoHalo(t *testing.T) {
	assert.Nil(t, Buffer(square(0, 0, 2), 0))
	assert.Nil(t, Buffer(square(0, 0, 2), -1))
	assert.Nil(t, Buffer(model.Outline{{X: 0, Y: 0}, {X: 1, Y: 1}}, 1))
}
