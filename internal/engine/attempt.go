package engine

import (
	"context"
	"math"
	"math/rand"

	"github.com/petrich/aggpack/internal/geom"
	"github.com/petrich/aggpack/internal/grading"
	"github.com/petrich/aggpack/internal/model"
)

// Placement margin applied on top of the worst-case outline radius so
// fresh candidates land with slack to the region boundary.
const marginFactor = 1.5

// attempt builds one candidate aggregate for the group, entirely free of
// side effects on shared state: it reads the committed snapshot through
// the detector and returns nil on any rejection. The orchestrator owns
// the final accept decision.
func (g *Generator) attempt(ctx context.Context, rng *rand.Rand, group *grading.Group, maxRadius float64) *model.Aggregate {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	spec := grading.PickShape(rng, group)
	if spec == nil {
		return nil
	}

	center := g.randomCenter(rng, maxRadius*marginFactor)
	outline, area, params, ok := buildShape(rng, center, spec)
	if !ok {
		return nil
	}

	centroid, radius := geom.BoundingCircle(outline)

	var buffered model.Outline
	if group.Config.ITZThickness > 0 {
		buffered = geom.Buffer(outline, group.Config.ITZThickness)
	}

	if g.collides(outline, buffered) {
		return nil
	}

	if g.settings.BoundaryAdjust {
		adjusted, moved := g.adjustBoundary(outline, centroid, radius)
		if moved {
			outline = adjusted
			centroid, radius = geom.BoundingCircle(outline)
			area = geom.PolygonArea(outline)
			if group.Config.ITZThickness > 0 {
				buffered = geom.Buffer(outline, group.Config.ITZThickness)
			}
			// The move can land on a neighbor the first check never saw.
			if g.collides(outline, buffered) {
				return nil
			}
		}
	}

	return &model.Aggregate{
		ID:           model.NewAggregateID(),
		GroupID:      group.ID,
		Center:       centroid,
		Radius:       radius,
		Area:         area,
		Outline:      outline,
		Buffered:     buffered,
		ITZThickness: group.Config.ITZThickness,
		Params:       params,
	}
}

// randomCenter draws a uniform placement center inside the region inset
// by margin on every side. Regions too small for the margin fall back to
// the full extent; boundary adjustment catches the spill.
func (g *Generator) randomCenter(rng *rand.Rand, margin float64) model.Point2D {
	minX, maxX := g.region.MinX+margin, g.region.MaxX-margin
	if minX >= maxX {
		minX, maxX = g.region.MinX, g.region.MaxX
	}
	minY, maxY := g.region.MinY+margin, g.region.MaxY-margin
	if minY >= maxY {
		minY, maxY = g.region.MinY, g.region.MaxY
	}
	return model.Point2D{
		X: minX + rng.Float64()*(maxX-minX),
		Y: minY + rng.Float64()*(maxY-minY),
	}
}

// buildShape draws the variant's random parameters and generates the
// outline. Areas for circles and ellipses are closed-form; polygons use
// the shoelace area of the generated ring.
func buildShape(rng *rand.Rand, center model.Point2D, spec *model.ShapeSpec) (model.Outline, float64, model.ShapeParams, bool) {
	switch spec.Type {
	case model.ShapePolygon:
		size := uniform(rng, spec.MinSize, spec.MaxSize)
		sides := spec.MinSides + rng.Intn(spec.MaxSides-spec.MinSides+1)
		outline, err := geom.RandomPolygon(rng, center, size, sides, spec.Irregularity, spec.Spikiness, geom.EdgeOptions{
			Repair:        spec.OptimizeEdges,
			MinEdgeLength: spec.MinEdgeLength,
		})
		if err != nil {
			return nil, 0, model.ShapeParams{}, false
		}
		return outline, geom.PolygonArea(outline), model.ShapeParams{
			Type:         model.ShapePolygon,
			Size:         size,
			Sides:        sides,
			Irregularity: spec.Irregularity,
			Spikiness:    spec.Spikiness,
		}, true

	case model.ShapeCircle:
		radius := uniform(rng, spec.MinRadius, spec.MaxRadius)
		outline := geom.Circle(center, radius, spec.Segments)
		return outline, geom.CircleArea(radius), model.ShapeParams{
			Type:     model.ShapeCircle,
			Radius:   radius,
			Segments: spec.Segments,
		}, true

	case model.ShapeEllipse:
		major := uniform(rng, spec.MinMajor, spec.MaxMajor)
		minor := uniform(rng, spec.MinMinor, spec.MaxMinor)
		rotation := rng.Float64() * math.Pi
		outline := geom.Ellipse(center, major, minor, rotation, spec.Segments)
		return outline, geom.EllipseArea(major, minor), model.ShapeParams{
			Type:     model.ShapeEllipse,
			Major:    major,
			Minor:    minor,
			Rotation: rotation,
			Segments: spec.Segments,
		}, true
	}
	return nil, 0, model.ShapeParams{}, false
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
