package model

import "fmt"

// Rect is an axis-aligned rectangle used for bounding boxes and spatial
// index bounds.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Intersects reports whether the two rectangles overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return !(r.MaxX < o.MinX || r.MinX > o.MaxX || r.MaxY < o.MinY || r.MinY > o.MaxY)
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	u := r
	if o.MinX < u.MinX {
		u.MinX = o.MinX
	}
	if o.MinY < u.MinY {
		u.MinY = o.MinY
	}
	if o.MaxX > u.MaxX {
		u.MaxX = o.MaxX
	}
	if o.MaxY > u.MaxY {
		u.MaxY = o.MaxY
	}
	return u
}

// Region is the bounded rectangular area aggregates are packed into.
// It is immutable once generation starts.
type Region struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Validate rejects regions with non-positive extents.
func (r Region) Validate() error {
	if r.MinX >= r.MaxX || r.MinY >= r.MaxY {
		return fmt.Errorf("%w: region max corner (%g, %g) must exceed min corner (%g, %g)",
			ErrInvalidConfig, r.MaxX, r.MaxY, r.MinX, r.MinY)
	}
	return nil
}

// Rect returns the region as a bounding rectangle.
func (r Region) Rect() Rect {
	return Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

// Area returns the region area.
func (r Region) Area() float64 {
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}
