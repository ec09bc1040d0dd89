package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrich/aggpack/internal/model"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRandomPolygon_ClosedWithRequestedSides(t *testing.T) {
	rng := testRNG()
	center := model.Point2D{X: 10, Y: 10}

	for sides := 3; sides <= 12; sides++ {
		outline, err := RandomPolygon(rng, center, 5, sides, 0.3, 0.2, EdgeOptions{})
		require.NoError(t, err)
		assert.Len(t, outline, sides+1, "closed ring repeats the first point")
		assert.True(t, outline.Closed())
	}
}

func TestRandomPolygon_RadiiClamped(t *testing.T) {
	rng := testRNG()
	center := model.Point2D{X: 0, Y: 0}
	size := 4.0

	// High spikiness forces the gaussian clamp to engage regularly.
	for i := 0; i < 50; i++ {
		outline, err := RandomPolygon(rng, center, size, 8, 0.5, 1.0, EdgeOptions{})
		require.NoError(t, err)
		for _, p := range outline {
			r := Distance(center, p)
			assert.GreaterOrEqual(t, r, 0.3*size-1e-9)
			assert.LessOrEqual(t, r, 1.8*size+1e-9)
		}
	}
}

func TestRandomPolygon_RejectsTooFewSides(t *testing.T) {
	_, err := RandomPolygon(testRNG(), model.Point2D{}, 5, 2, 0.3, 0.2, EdgeOptions{})
	assert.Error(t, err)
}

func TestRandomPolygon_ClampsParameterRanges(t *testing.T) {
	// Out-of-range irregularity and spikiness are clamped, not rejected.
	outline, err := RandomPolygon(testRNG(), model.Point2D{}, 5, 6, 3.5, -1, EdgeOptions{})
	require.NoError(t, err)
	assert.Len(t, outline, 7)
}

func TestRandomPolygon_EdgeRepairLengthensShortEdges(t *testing.T) {
	// Square with a tiny chamfer at one corner: the chamfer edge is well
	// below the minimum, its neighbors are not.
	ring := model.Outline{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3.7}, {X: 3.7, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
	}
	short := Distance(ring[2], ring[3])
	require.Less(t, short, 1.0)

	repaired := repairShortEdges(ring, 1.0)

	assert.True(t, repaired.Closed())
	assert.Len(t, repaired, len(ring))
	assert.Greater(t, Distance(repaired[2], repaired[3]), short,
		"the chamfer edge must be lengthened")

	// The leading endpoint continues along the incoming edge (upward on
	// the right side), the trailing one slides toward its successor
	// (leftward along the top), each by half the deficit.
	adjust := (1.0 - short) / 2
	assert.InDelta(t, 4.0, repaired[2].X, 1e-12)
	assert.InDelta(t, 3.7+adjust, repaired[2].Y, 1e-12)
	assert.InDelta(t, 3.7-adjust, repaired[3].X, 1e-12)
	assert.InDelta(t, 4.0, repaired[3].Y, 1e-12)
}

func TestCircle_PointsOnRadius(t *testing.T) {
	center := model.Point2D{X: 3, Y: -2}
	outline := Circle(center, 2.5, 36)

	assert.Len(t, outline, 37)
	assert.True(t, outline.Closed())
	for _, p := range outline {
		assert.InDelta(t, 2.5, Distance(center, p), 1e-9)
	}
}

func TestCircle_SegmentFloor(t *testing.T) {
	outline := Circle(model.Point2D{}, 1, 3)
	assert.Len(t, outline, 9, "segment counts below 8 are raised to 8")
}

func TestEllipse_AxesAndRotation(t *testing.T) {
	center := model.Point2D{X: 0, Y: 0}

	// Unrotated: extremes lie on the axes.
	outline := Ellipse(center, 4, 2, 0, 36)
	require.True(t, outline.Closed())
	b := outline.Bounds()
	assert.InDelta(t, 8.0, b.Width(), 1e-9)
	assert.InDelta(t, 4.0, b.Height(), 1e-9)

	// Rotated a quarter turn the bounds swap.
	rotated := Ellipse(center, 4, 2, math.Pi/2, 36)
	rb := rotated.Bounds()
	assert.InDelta(t, 4.0, rb.Width(), 1e-9)
	assert.InDelta(t, 8.0, rb.Height(), 1e-9)
}

func TestPolygonArea_UnitSquare(t *testing.T) {
	square := model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	assert.InDelta(t, 1.0, PolygonArea(square), 1e-9)

	// Winding direction must not matter.
	reversed := model.Outline{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	assert.InDelta(t, 1.0, PolygonArea(reversed), 1e-9)
}

func TestPolygonArea_CircleConverges(t *testing.T) {
	outline := Circle(model.Point2D{}, 3, 360)
	assert.InDelta(t, CircleArea(3), PolygonArea(outline), 0.01)
}

func TestClosedFormAreas(t *testing.T) {
	assert.InDelta(t, math.Pi*4, CircleArea(2), 1e-9)
	assert.InDelta(t, math.Pi*6, EllipseArea(3, 2), 1e-9)
}

func TestBoundingCircle_EnclosesAllVertices(t *testing.T) {
	outline, err := RandomPolygon(testRNG(), model.Point2D{X: 5, Y: 5}, 4, 9, 0.4, 0.5, EdgeOptions{})
	require.NoError(t, err)

	center, radius := BoundingCircle(outline)
	for _, p := range outline {
		assert.LessOrEqual(t, Distance(center, p), radius+1e-9)
	}
}

func TestBoundingCircle_Circle(t *testing.T) {
	outline := Circle(model.Point2D{X: 2, Y: 3}, 2, 36)
	center, radius := BoundingCircle(outline)

	// The duplicated closing point biases the centroid slightly; the
	// bounding radius stays close to the true radius.
	assert.InDelta(t, 2.0, center.X, 0.2)
	assert.InDelta(t, 3.0, center.Y, 0.2)
	assert.InDelta(t, 2.0, radius, 0.2)
}
