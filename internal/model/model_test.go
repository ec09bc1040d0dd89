package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline_Bounds(t *testing.T) {
	o := Outline{{X: 1, Y: 2}, {X: -3, Y: 5}, {X: 4, Y: 0}, {X: 1, Y: 2}}
	b := o.Bounds()

	assert.Equal(t, -3.0, b.MinX)
	assert.Equal(t, 0.0, b.MinY)
	assert.Equal(t, 4.0, b.MaxX)
	assert.Equal(t, 5.0, b.MaxY)
}

func TestOutline_Translate(t *testing.T) {
	o := Outline{{X: 0, Y: 0}, {X: 1, Y: 1}}
	moved := o.Translate(2, -3)

	assert.Equal(t, Point2D{X: 2, Y: -3}, moved[0])
	assert.Equal(t, Point2D{X: 3, Y: -2}, moved[1])
	// The original is untouched.
	assert.Equal(t, Point2D{X: 0, Y: 0}, o[0])
}

func TestOutline_Closed(t *testing.T) {
	closed := Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	open := Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	assert.True(t, closed.Closed())
	assert.False(t, open.Closed())
	assert.False(t, Outline{}.Closed())
}

func TestRect_IntersectsAndContains(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}
	c := Rect{MinX: 11, MinY: 11, MaxX: 20, MaxY: 20}
	inner := Rect{MinX: 2, MinY: 2, MaxX: 8, MaxY: 8}

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.True(t, a.Contains(inner))
	assert.False(t, a.Contains(b))
}

func TestRect_Union(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}
	b := Rect{MinX: -2, MinY: 3, MaxX: 4, MaxY: 9}
	u := a.Union(b)

	assert.Equal(t, Rect{MinX: -2, MinY: 0, MaxX: 5, MaxY: 9}, u)
}

func TestAggregate_BoundsIncludesBuffer(t *testing.T) {
	agg := &Aggregate{
		Outline:  Outline{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 0}},
		Buffered: Outline{{X: -1, Y: -1}, {X: 3, Y: -1}, {X: 3, Y: 3}, {X: -1, Y: -1}},
	}
	b := agg.Bounds()

	assert.Equal(t, Rect{MinX: -1, MinY: -1, MaxX: 3, MaxY: 3}, b)
}

func TestNewAggregateID_ShortAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewAggregateID()
		assert.Len(t, id, 8)
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestRegion_Validate(t *testing.T) {
	assert.NoError(t, Region{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}.Validate())

	err := Region{MinX: 0, MinY: 0, MaxX: 0, MaxY: 10}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = Region{MinX: 5, MinY: 5, MaxX: 3, MaxY: 10}.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.Mode = ModePorosity
	s.TargetPorosity = 1.5
	assert.ErrorIs(t, s.Validate(), ErrInvalidConfig, "porosity outside (0,1) must be rejected")

	s = DefaultSettings()
	s.MinDistance = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidConfig)

	s = DefaultSettings()
	s.MaxAttempts = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidConfig)

	s = DefaultSettings()
	s.Index = "rtree"
	assert.ErrorIs(t, s.Validate(), ErrInvalidConfig)

	s = DefaultSettings()
	s.Mode = "random"
	assert.ErrorIs(t, s.Validate(), ErrInvalidConfig)
}

func TestShapeSpec_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolygonSpec().Validate())
	assert.NoError(t, DefaultCircleSpec().Validate())
	assert.NoError(t, DefaultEllipseSpec().Validate())

	p := DefaultPolygonSpec()
	p.MinSides = 2
	assert.ErrorIs(t, p.Validate(), ErrInvalidConfig, "fewer than 3 sides must be rejected")

	p = DefaultPolygonSpec()
	p.MaxSize = p.MinSize - 1
	assert.ErrorIs(t, p.Validate(), ErrInvalidConfig)

	c := DefaultCircleSpec()
	c.MinRadius = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	e := DefaultEllipseSpec()
	e.MinMinor = -1
	assert.ErrorIs(t, e.Validate(), ErrInvalidConfig)

	unknown := ShapeSpec{Type: "hexagon", Weight: 1}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidConfig)
}

func TestGroupConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultGroupConfig().Validate())

	g := DefaultGroupConfig()
	g.MaxCount = 0
	assert.ErrorIs(t, g.Validate(), ErrInvalidConfig)

	g = DefaultGroupConfig()
	g.Shapes = nil
	assert.ErrorIs(t, g.Validate(), ErrInvalidConfig)

	g = DefaultGroupConfig()
	g.Shapes[0].Weight = 0
	assert.ErrorIs(t, g.Validate(), ErrInvalidConfig, "all-zero weights leave nothing to draw")
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Settings.Seed = 42
	cfg.Groups[0].Label = "coarse"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Region.MaxX = cfg.Region.MinX
	require.NoError(t, SaveConfig(path, cfg))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestShapeParams_String(t *testing.T) {
	poly := ShapeParams{Type: ShapePolygon, Size: 4.5, Sides: 6, Irregularity: 0.3, Spikiness: 0.2}
	assert.Equal(t, "Size=4.50, Sides=6, Irregularity=0.30, Spikiness=0.20", poly.String())

	circ := ShapeParams{Type: ShapeCircle, Radius: 2.25, Segments: 36}
	assert.Equal(t, "Radius=2.25, Segments=36", circ.String())
}
