package model

import "fmt"

// Mode selects the generation termination target.
type Mode string

const (
	ModeCount    Mode = "count"    // stop when every group reaches its target area
	ModePorosity Mode = "porosity" // stop when total area reaches region*(1-porosity)
)

// IndexKind selects the spatial partitioning strategy.
type IndexKind string

const (
	IndexQuadtree IndexKind = "quadtree"
	IndexKDTree   IndexKind = "kdtree"
)

// Settings holds the run parameters of the packing engine.
type Settings struct {
	Mode           Mode      `json:"mode"`
	TargetPorosity float64   `json:"target_porosity"` // fraction in (0,1), porosity mode only
	MinDistance    float64   `json:"min_distance"`    // clearance between aggregates
	MaxAttempts    int       `json:"max_attempts"`    // attempts budget per group slot (safety valve)
	BoundaryAdjust bool      `json:"boundary_adjust"` // snap-and-clip candidates near the region edge
	Index          IndexKind `json:"index"`
	Seed           int64     `json:"seed"`       // 0 = time-derived
	Workers        int       `json:"workers"`    // base parallelism, 0 = derived from CPU count
	Vectorized     bool      `json:"vectorized"` // batch bounds pre-filter in the collision detector
}

// DefaultSettings returns the stock run parameters.
func DefaultSettings() Settings {
	return Settings{
		Mode:           ModeCount,
		TargetPorosity: 0.25,
		MinDistance:    2.0,
		MaxAttempts:    100,
		BoundaryAdjust: true,
		Index:          IndexQuadtree,
		Workers:        4,
	}
}

// Validate checks mode-dependent parameter ranges.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeCount:
	case ModePorosity:
		if s.TargetPorosity <= 0 || s.TargetPorosity >= 1 {
			return fmt.Errorf("%w: target porosity must lie in (0,1), got %g", ErrInvalidConfig, s.TargetPorosity)
		}
	default:
		return fmt.Errorf("%w: unknown generation mode %q", ErrInvalidConfig, s.Mode)
	}
	if s.MinDistance < 0 {
		return fmt.Errorf("%w: min distance must not be negative, got %g", ErrInvalidConfig, s.MinDistance)
	}
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, s.MaxAttempts)
	}
	switch s.Index {
	case IndexQuadtree, IndexKDTree:
	default:
		return fmt.Errorf("%w: unknown spatial index kind %q", ErrInvalidConfig, s.Index)
	}
	return nil
}
