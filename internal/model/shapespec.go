package model

import "fmt"

// ShapeType identifies a shape-class variant.
type ShapeType string

const (
	ShapePolygon ShapeType = "polygon"
	ShapeCircle  ShapeType = "circle"
	ShapeEllipse ShapeType = "ellipse"
)

// ShapeSpec is a weighted shape-class descriptor. Type selects which of
// the per-variant field sets applies; Weight drives weighted random
// selection within a group (weight 0 excludes the class).
type ShapeSpec struct {
	Type   ShapeType `json:"type"`
	Weight float64   `json:"weight"`

	// Polygon
	MinSize       float64 `json:"min_size,omitempty"`
	MaxSize       float64 `json:"max_size,omitempty"`
	MinSides      int     `json:"min_sides,omitempty"`
	MaxSides      int     `json:"max_sides,omitempty"`
	Irregularity  float64 `json:"irregularity,omitempty"` // 0..1, angular step variation
	Spikiness     float64 `json:"spikiness,omitempty"`    // 0..1, radial variation
	OptimizeEdges bool    `json:"optimize_edges,omitempty"`
	MinEdgeLength float64 `json:"min_edge_length,omitempty"` // 0 = size/10

	// Circle
	MinRadius float64 `json:"min_radius,omitempty"`
	MaxRadius float64 `json:"max_radius,omitempty"`
	Segments  int     `json:"segments,omitempty"` // clamped up to 8 at generation time

	// Ellipse
	MinMajor float64 `json:"min_major,omitempty"`
	MaxMajor float64 `json:"max_major,omitempty"`
	MinMinor float64 `json:"min_minor,omitempty"`
	MaxMinor float64 `json:"max_minor,omitempty"`
}

// DefaultPolygonSpec mirrors the stock polygon class parameters.
func DefaultPolygonSpec() ShapeSpec {
	return ShapeSpec{
		Type:          ShapePolygon,
		Weight:        1,
		MinSize:       2.0,
		MaxSize:       8.0,
		MinSides:      3,
		MaxSides:      7,
		Irregularity:  0.3,
		Spikiness:     0.2,
		OptimizeEdges: true,
	}
}

// DefaultCircleSpec mirrors the stock circle class parameters.
func DefaultCircleSpec() ShapeSpec {
	return ShapeSpec{
		Type:      ShapeCircle,
		Weight:    1,
		MinRadius: 2.0,
		MaxRadius: 5.0,
		Segments:  36,
	}
}

// DefaultEllipseSpec mirrors the stock ellipse class parameters.
func DefaultEllipseSpec() ShapeSpec {
	return ShapeSpec{
		Type:     ShapeEllipse,
		Weight:   1,
		MinMajor: 3.0,
		MaxMajor: 10.0,
		MinMinor: 2.0,
		MaxMinor: 8.0,
		Segments: 36,
	}
}

// MaxExtent returns the largest possible distance from center to any
// outline point this spec can produce, before the safety factor the
// engine applies when sizing placement margins.
func (s ShapeSpec) MaxExtent() float64 {
	switch s.Type {
	case ShapePolygon:
		return s.MaxSize
	case ShapeCircle:
		return s.MaxRadius
	case ShapeEllipse:
		if s.MaxMajor > s.MaxMinor {
			return s.MaxMajor
		}
		return s.MaxMinor
	}
	return 0
}

// Validate checks the per-variant parameter ranges.
func (s ShapeSpec) Validate() error {
	if s.Weight < 0 {
		return fmt.Errorf("%w: shape weight must not be negative, got %g", ErrInvalidConfig, s.Weight)
	}
	switch s.Type {
	case ShapePolygon:
		if s.MinSize <= 0 || s.MaxSize < s.MinSize {
			return fmt.Errorf("%w: polygon size range [%g, %g] is invalid", ErrInvalidConfig, s.MinSize, s.MaxSize)
		}
		if s.MinSides < 3 || s.MaxSides < s.MinSides {
			return fmt.Errorf("%w: polygon side range [%d, %d] is invalid (need at least 3 sides)", ErrInvalidConfig, s.MinSides, s.MaxSides)
		}
	case ShapeCircle:
		if s.MinRadius <= 0 || s.MaxRadius < s.MinRadius {
			return fmt.Errorf("%w: circle radius range [%g, %g] is invalid", ErrInvalidConfig, s.MinRadius, s.MaxRadius)
		}
	case ShapeEllipse:
		if s.MinMajor <= 0 || s.MaxMajor < s.MinMajor || s.MinMinor <= 0 || s.MaxMinor < s.MinMinor {
			return fmt.Errorf("%w: ellipse axis ranges [%g, %g] x [%g, %g] are invalid",
				ErrInvalidConfig, s.MinMajor, s.MaxMajor, s.MinMinor, s.MaxMinor)
		}
	default:
		return fmt.Errorf("%w: unknown shape type %q", ErrInvalidConfig, s.Type)
	}
	return nil
}

// ShapeParams echoes the random values chosen for a placed aggregate,
// recorded for audit and export.
type ShapeParams struct {
	Type ShapeType `json:"type"`

	// Polygon
	Size         float64 `json:"size,omitempty"`
	Sides        int     `json:"sides,omitempty"`
	Irregularity float64 `json:"irregularity,omitempty"`
	Spikiness    float64 `json:"spikiness,omitempty"`

	// Circle
	Radius float64 `json:"radius,omitempty"`

	// Ellipse
	Major    float64 `json:"major,omitempty"`
	Minor    float64 `json:"minor,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`

	Segments int `json:"segments,omitempty"`
}

// String renders the parameters in the row-export format.
func (p ShapeParams) String() string {
	switch p.Type {
	case ShapePolygon:
		return fmt.Sprintf("Size=%.2f, Sides=%d, Irregularity=%.2f, Spikiness=%.2f",
			p.Size, p.Sides, p.Irregularity, p.Spikiness)
	case ShapeCircle:
		return fmt.Sprintf("Radius=%.2f, Segments=%d", p.Radius, p.Segments)
	case ShapeEllipse:
		return fmt.Sprintf("Major=%.2f, Minor=%.2f, Rotation=%.2f, Segments=%d",
			p.Major, p.Minor, p.Rotation, p.Segments)
	}
	return string(p.Type)
}
