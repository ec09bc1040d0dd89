package model

import "fmt"

// GroupConfig describes one grading class: a target share of the region
// area, a clearance halo thickness, a hard count cap and a weighted shape
// catalog. LayerColor is presentation metadata passed through to placement
// events and exporters; the engine never interprets it.
type GroupConfig struct {
	Label        string      `json:"label,omitempty"`
	AreaRatio    float64     `json:"area_ratio"`    // percent of region area
	ITZThickness float64     `json:"itz_thickness"` // halo width, collision clearance only
	MaxCount     int         `json:"max_count"`
	LayerColor   string      `json:"layer_color,omitempty"`
	Shapes       []ShapeSpec `json:"shapes"`
}

// DefaultGroupConfig returns the stock grading class.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		AreaRatio:    20.0,
		ITZThickness: 1.0,
		MaxCount:     200,
		LayerColor:   "red",
		Shapes:       []ShapeSpec{DefaultPolygonSpec()},
	}
}

// Validate checks the group fields and every shape spec. At least one
// shape must carry a positive weight, otherwise no candidate can ever be
// drawn for the group.
func (g GroupConfig) Validate() error {
	if g.AreaRatio < 0 {
		return fmt.Errorf("%w: area ratio must not be negative, got %g", ErrInvalidConfig, g.AreaRatio)
	}
	if g.ITZThickness < 0 {
		return fmt.Errorf("%w: ITZ thickness must not be negative, got %g", ErrInvalidConfig, g.ITZThickness)
	}
	if g.MaxCount <= 0 {
		return fmt.Errorf("%w: max count must be positive, got %d", ErrInvalidConfig, g.MaxCount)
	}
	if len(g.Shapes) == 0 {
		return fmt.Errorf("%w: group needs at least one shape spec", ErrInvalidConfig)
	}
	totalWeight := 0.0
	for i, s := range g.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		totalWeight += s.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("%w: group needs at least one shape with positive weight", ErrInvalidConfig)
	}
	return nil
}
