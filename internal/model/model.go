// Package model defines the data model shared by the packing engine and
// its collaborators: regions, shape specifications, grading groups, placed
// aggregates and run settings.
package model

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
// A run never starts once a config error is detected.
var ErrInvalidConfig = errors.New("invalid configuration")

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// Generated outlines are explicitly closed: the last point repeats the first.
type Outline []Point2D

// Bounds returns the axis-aligned bounding rectangle of the outline.
func (o Outline) Bounds() Rect {
	if len(o) == 0 {
		return Rect{}
	}
	r := Rect{MinX: o[0].X, MinY: o[0].Y, MaxX: o[0].X, MaxY: o[0].Y}
	for _, p := range o[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Closed reports whether the first and last points coincide.
func (o Outline) Closed() bool {
	if len(o) < 2 {
		return false
	}
	return o[0] == o[len(o)-1]
}

// Aggregate is a single placed shape instance. It is immutable once
// committed; the spatial index and group manager hold references only.
type Aggregate struct {
	ID           string      `json:"id"`
	GroupID      int         `json:"group_id"`
	Center       Point2D     `json:"center"`
	Radius       float64     `json:"radius"` // centroid bounding-circle radius
	Area         float64     `json:"area"`
	Outline      Outline     `json:"outline"`
	Buffered     Outline     `json:"buffered_outline,omitempty"` // ITZ halo, nil when thickness is 0
	ITZThickness float64     `json:"itz_thickness"`
	Params       ShapeParams `json:"shape_parameters"`
}

// NewAggregateID returns a short unique aggregate identifier.
func NewAggregateID() string {
	return uuid.New().String()[:8]
}

// Bounds returns the bounding rectangle covering the outline and, when
// present, the buffered outline. This is the extent indexed spatially.
func (a *Aggregate) Bounds() Rect {
	b := a.Outline.Bounds()
	if len(a.Buffered) > 0 {
		b = b.Union(a.Buffered.Bounds())
	}
	return b
}
