// Package grading tracks the per-class area targets and counters that
// drive group selection during a packing run.
package grading

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/petrich/aggpack/internal/model"
)

// Group is one grading class with its runtime state. GeneratedArea and
// Count only ever increase during a run; Committed holds the geometries
// used by collision queries when no spatial index is active.
type Group struct {
	ID            int
	Config        model.GroupConfig
	TargetArea    float64
	GeneratedArea float64
	Count         int
	Committed     []*model.Aggregate
}

// Progress returns the fill ratio toward the group's target area, or 0
// when the target is 0.
func (g *Group) Progress() float64 {
	if g.TargetArea <= 0 {
		return 0
	}
	return g.GeneratedArea / g.TargetArea
}

// Manager owns the grading groups of a run. All mutation happens on the
// orchestrating goroutine; attempts read only.
type Manager struct {
	groups         []*Group
	unknownCommits int
}

// NewManager validates the group configs and builds runtime state.
// Group IDs are 1-based config positions.
func NewManager(configs []model.GroupConfig) (*Manager, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: at least one group is required", model.ErrInvalidConfig)
	}
	m := &Manager{}
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		m.groups = append(m.groups, &Group{ID: i + 1, Config: cfg})
	}
	return m, nil
}

// InitTargets derives each group's target area from the region area and
// zeroes runtime counters.
func (m *Manager) InitTargets(regionArea float64) {
	for _, g := range m.groups {
		g.TargetArea = regionArea * g.Config.AreaRatio / 100.0
		g.GeneratedArea = 0
		g.Count = 0
		g.Committed = nil
	}
}

// SelectNext returns the eligible group furthest from its proportional
// target, or nil when every group has reached its count cap. Both modes
// use the same progress ordering; ties keep config order.
func (m *Manager) SelectNext(mode model.Mode) *Group {
	eligible := make([]*Group, 0, len(m.groups))
	for _, g := range m.groups {
		if g.Count < g.Config.MaxCount {
			eligible = append(eligible, g)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Progress() < eligible[j].Progress()
	})
	return eligible[0]
}

// Commit records a placed aggregate against its group. An unknown group
// ID is counted as a warning, not an error.
func (m *Manager) Commit(groupID int, agg *model.Aggregate) bool {
	for _, g := range m.groups {
		if g.ID == groupID {
			g.GeneratedArea += agg.Area
			g.Count++
			g.Committed = append(g.Committed, agg)
			return true
		}
	}
	m.unknownCommits++
	return false
}

// Reset zeroes all runtime counters and drops committed geometry.
func (m *Manager) Reset() {
	for _, g := range m.groups {
		g.GeneratedArea = 0
		g.Count = 0
		g.Committed = nil
	}
	m.unknownCommits = 0
}

// Groups returns the groups in config order.
func (m *Manager) Groups() []*Group {
	return m.groups
}

// AllCommitted flattens every group's committed aggregates, the fallback
// obstacle set when no spatial index is in use.
func (m *Manager) AllCommitted() []*model.Aggregate {
	var all []*model.Aggregate
	for _, g := range m.groups {
		all = append(all, g.Committed...)
	}
	return all
}

// AllSatisfied reports whether every group has reached its target area.
func (m *Manager) AllSatisfied() bool {
	for _, g := range m.groups {
		if g.GeneratedArea < g.TargetArea {
			return false
		}
	}
	return true
}

// TotalMaxCount sums the count caps across groups, the basis of the
// attempts safety valve.
func (m *Manager) TotalMaxCount() int {
	total := 0
	for _, g := range m.groups {
		total += g.Config.MaxCount
	}
	return total
}

// MeanProgress averages fill progress across groups with a positive
// target, feeding the dynamic parallelism heuristic in count mode.
func (m *Manager) MeanProgress() float64 {
	sum, n := 0.0, 0
	for _, g := range m.groups {
		if g.TargetArea > 0 {
			p := g.Progress()
			if p > 1 {
				p = 1
			}
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// UnknownCommits reports commits against nonexistent group IDs.
func (m *Manager) UnknownCommits() int {
	return m.unknownCommits
}

// PickShape draws a shape spec from the group's catalog by weight.
// Zero-weight specs are never selected.
func PickShape(rng *rand.Rand, g *Group) *model.ShapeSpec {
	total := 0.0
	for _, s := range g.Config.Shapes {
		total += s.Weight
	}
	if total <= 0 {
		return nil
	}
	r := rng.Float64() * total
	for i := range g.Config.Shapes {
		s := &g.Config.Shapes[i]
		if s.Weight <= 0 {
			continue
		}
		r -= s.Weight
		if r < 0 {
			return s
		}
	}
	// Float accumulation can leave r at the boundary; fall back to the
	// last positive-weight spec.
	for i := len(g.Config.Shapes) - 1; i >= 0; i-- {
		if g.Config.Shapes[i].Weight > 0 {
			return &g.Config.Shapes[i]
		}
	}
	return nil
}
