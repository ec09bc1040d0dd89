// Package engine orchestrates the packing run: it draws candidate
// aggregates in parallel, validates them against the committed set,
// commits winners into the spatial index and group counters, and drives
// the run to a terminal state without ever looping forever.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/petrich/aggpack/internal/collision"
	"github.com/petrich/aggpack/internal/grading"
	"github.com/petrich/aggpack/internal/model"
	"github.com/petrich/aggpack/internal/spatial"
)

// State tracks the run lifecycle.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateRunning
	StateCompleted
	StateCanceled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

const (
	// Round-level parallelism bounds. Attempt counts shrink as the region
	// fills and collision probability rises.
	minRoundAttempts = 2
	maxParallelism   = 12

	// Failed rounds between parallelism bumps.
	backoffInterval = 50

	// A stuck attempt converts to a failed attempt after this long.
	attemptTimeout = 5 * time.Second

	progressInterval = 500 * time.Millisecond

	// Safety factor from shape nominal size to worst-case outline extent
	// (polygon radii can reach 1.8x their nominal size).
	extentFactor = 1.5
)

// Generator is the packing engine for one region and group configuration.
// It may be run repeatedly; each run rebuilds the spatial index and resets
// all counters. Not safe for concurrent Runs.
type Generator struct {
	region   model.Region
	settings model.Settings
	groups   *grading.Manager
	detector *collision.Detector
	index    spatial.Index
	rng      *rand.Rand

	results   []*model.Aggregate
	totalArea float64

	attempts     int // rounds dispatched, committed plus failed
	failedRounds int // rounds with no commit, across the whole run

	state     State
	startTime time.Time
	endTime   time.Time
}

// New validates the configuration and builds a generator. Any
// configuration error fails synchronously; no run is started.
func New(region model.Region, groups []model.GroupConfig, settings model.Settings) (*Generator, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	mgr, err := grading.NewManager(groups)
	if err != nil {
		return nil, err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		region:   region,
		settings: settings,
		groups:   mgr,
		detector: &collision.Detector{Vectorized: settings.Vectorized},
		rng:      rand.New(rand.NewSource(seed)),
		state:    StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (g *Generator) State() State {
	return g.state
}

// Results returns the committed aggregates in placement order. The slice
// remains valid after the run ends, including canceled and failed runs.
func (g *Generator) Results() []*model.Aggregate {
	return g.results
}

// TotalArea returns the summed area of all committed aggregates.
func (g *Generator) TotalArea() float64 {
	return g.totalArea
}

// Porosity returns the fraction of the region left uncovered, in [0,1].
func (g *Generator) Porosity() float64 {
	area := g.region.Area()
	if area <= 0 || g.totalArea <= 0 {
		return 1
	}
	p := 1 - g.totalArea/area
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// IndexStats exposes the spatial index diagnostics of the last run.
func (g *Generator) IndexStats() spatial.Stats {
	if g.index == nil {
		return spatial.Stats{}
	}
	return g.index.Stats()
}

// Clear discards all generated aggregates and resets runtime state.
func (g *Generator) Clear() {
	g.results = nil
	g.totalArea = 0
	g.attempts = 0
	g.failedRounds = 0
	g.groups.Reset()
	if g.index != nil {
		g.index.Clear()
		g.index = nil
	}
	g.state = StateIdle
}

// Run executes the generation loop until a terminal condition and emits
// events into sink. Cancellation is cooperative via ctx, observed at the
// top of each round; committed aggregates survive cancellation. The
// returned error is non-nil only for unexpected orchestration failures.
func (g *Generator) Run(ctx context.Context, sink model.EventSink) (model.Summary, error) {
	if sink == nil {
		sink = model.NullSink{}
	}

	g.state = StateInitializing
	g.startTime = time.Now()
	g.results = nil
	g.totalArea = 0
	g.attempts = 0
	g.failedRounds = 0
	g.detector.ResetErrors()

	maxRadius := g.maxPossibleRadius()
	params := spatial.Tune(maxRadius / 2)
	g.index = spatial.New(g.settings.Index, g.region.Rect(), params)
	g.groups.InitTargets(g.region.Area())

	targetTotalArea := 0.0
	if g.settings.Mode == model.ModePorosity {
		targetTotalArea = g.region.Area() * (1 - g.settings.TargetPorosity)
	}

	var runErr error
	status := func() model.Status {
		// An orchestration panic must not lose committed aggregates; it
		// converts to a failed run with partial results intact.
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("generation loop failure: %v", r)
			}
		}()
		return g.loop(ctx, sink, maxRadius, targetTotalArea)
	}()
	if runErr != nil {
		status = model.StatusFailed
	}

	g.endTime = time.Now()
	switch status {
	case model.StatusCompleted:
		g.state = StateCompleted
	case model.StatusCanceled:
		g.state = StateCanceled
	default:
		g.state = StateFailed
	}

	summary := g.summarize(status)
	sink.Terminal(summary)
	return summary, runErr
}

// loop is the Running phase. It returns the terminal status.
func (g *Generator) loop(ctx context.Context, sink model.EventSink, maxRadius, targetTotalArea float64) model.Status {
	g.state = StateRunning

	parallelism := g.initialParallelism(maxRadius)
	attemptBudget := g.settings.MaxAttempts * g.groups.TotalMaxCount()
	failureStreak := 0
	lastProgress := time.Now()

	for {
		select {
		case <-ctx.Done():
			return model.StatusCanceled
		default:
		}

		if g.exitReached(targetTotalArea) {
			return model.StatusCompleted
		}
		if g.attempts >= attemptBudget {
			// Safety valve: the configuration cannot satisfy its targets.
			return model.StatusCompleted
		}

		group := g.groups.SelectNext(g.settings.Mode)
		if group == nil {
			return model.StatusCompleted
		}

		if time.Since(lastProgress) >= progressInterval {
			sink.Progress(len(g.results), g.totalArea, g.Porosity())
			lastProgress = time.Now()
		}

		n := g.dynamicAttempts(parallelism, targetTotalArea)
		winner := g.round(ctx, group, n, maxRadius)
		g.attempts++

		if winner == nil {
			g.failedRounds++
			failureStreak++
			if failureStreak%backoffInterval == 0 && parallelism < maxParallelism {
				parallelism++
			}
			continue
		}

		failureStreak = 0
		g.commit(winner, group, sink)
	}
}

// round dispatches n independent candidate attempts, waits for every one
// of them, and returns the first candidate that survives the commit-time
// re-check, or nil. Attempts read the committed results and the spatial
// index, so the round must not hand control back to the orchestrator (who
// mutates both in commit) while any attempt is still running.
func (g *Generator) round(ctx context.Context, group *grading.Group, n int, maxRadius float64) *model.Aggregate {
	roundCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	results := make(chan *model.Aggregate, n)
	for i := 0; i < n; i++ {
		// Each attempt gets its own seeded source; math/rand sources are
		// not safe for concurrent use.
		seed := g.rng.Int63()
		go func() {
			results <- g.attempt(roundCtx, rand.New(rand.NewSource(seed)), group, maxRadius)
		}()
	}

	// Drain all n before touching shared state again. The channel is
	// buffered to n, so every attempt goroutine exits even if it loses.
	candidates := make([]*model.Aggregate, 0, n)
	for i := 0; i < n; i++ {
		if agg := <-results; agg != nil {
			candidates = append(candidates, agg)
		}
	}
	return g.pickWinner(candidates)
}

// pickWinner re-validates each candidate against the latest committed
// state and returns the first survivor. Candidates in one round are drawn
// concurrently against the same snapshot and may overlap each other, so
// at most one of a mutually colliding pair can win.
func (g *Generator) pickWinner(candidates []*model.Aggregate) *model.Aggregate {
	for _, agg := range candidates {
		if g.collides(agg.Outline, agg.Buffered) {
			continue
		}
		return agg
	}
	return nil
}

// commit applies a winner. Only the orchestrating goroutine mutates the
// index, the group counters and the result collection.
func (g *Generator) commit(agg *model.Aggregate, group *grading.Group, sink model.EventSink) {
	g.totalArea += agg.Area
	g.groups.Commit(agg.GroupID, agg)
	g.index.Insert(agg)
	g.results = append(g.results, agg)
	sink.Placement(agg, group.Config.LayerColor)
}

func (g *Generator) collides(outline, buffered model.Outline) bool {
	return g.detector.Collides(outline, buffered, g.results, g.settings.MinDistance, g.index)
}

// exitReached checks the mode-specific termination targets.
func (g *Generator) exitReached(targetTotalArea float64) bool {
	if g.settings.Mode == model.ModePorosity {
		return g.totalArea >= targetTotalArea
	}
	return g.groups.AllSatisfied()
}

// maxPossibleRadius is the worst-case outline extent across every
// configured shape spec, used to size placement margins and the spatial
// index.
func (g *Generator) maxPossibleRadius() float64 {
	max := 0.0
	for _, grp := range g.groups.Groups() {
		for _, s := range grp.Config.Shapes {
			if e := s.MaxExtent() * extentFactor; e > max {
				max = e
			}
		}
	}
	return max
}

// initialParallelism sizes the per-round worker count from the configured
// base and the particle scale: finer grading needs more aggregates, so
// more attempts pay off early.
func (g *Generator) initialParallelism(maxRadius float64) int {
	base := g.settings.Workers
	if base <= 0 {
		base = runtime.NumCPU()
	}
	avg := maxRadius / 2
	if avg <= 0 {
		avg = 1
	}
	p := int(float64(base) * (1 + 5.0/avg))
	if p < minRoundAttempts {
		p = minRoundAttempts
	}
	if p > 8 {
		p = 8
	}
	return p
}

// dynamicAttempts shrinks the per-round attempt count as completion
// progress grows, clamped to [2, 12].
func (g *Generator) dynamicAttempts(parallelism int, targetTotalArea float64) int {
	var progress float64
	if g.settings.Mode == model.ModePorosity && targetTotalArea > 0 {
		progress = g.totalArea / targetTotalArea
		if progress > 1 {
			progress = 1
		}
	} else {
		progress = g.groups.MeanProgress()
	}

	n := int(float64(parallelism) * 2 * (1 - progress*0.7))
	if n < minRoundAttempts {
		n = minRoundAttempts
	}
	if n > maxParallelism {
		n = maxParallelism
	}
	return n
}

// summarize builds the terminal summary for the run.
func (g *Generator) summarize(status model.Status) model.Summary {
	s := model.Summary{
		Status:          status,
		Count:           len(g.results),
		TotalArea:       g.totalArea,
		RegionArea:      g.region.Area(),
		Porosity:        g.Porosity(),
		Duration:        g.endTime.Sub(g.startTime),
		Attempts:        g.attempts,
		FailedRounds:    g.failedRounds,
		CollisionErrors: g.detector.ErrorCount(),
	}
	if len(g.results) > 0 {
		areas := make([]float64, len(g.results))
		for i, a := range g.results {
			areas[i] = a.Area
		}
		s.MeanArea = stat.Mean(areas, nil)
		if len(areas) > 1 {
			s.StdDevArea = stat.StdDev(areas, nil)
		}
	}
	for _, grp := range g.groups.Groups() {
		s.Groups = append(s.Groups, model.GroupSummary{
			ID:            grp.ID,
			Label:         grp.Config.Label,
			Count:         grp.Count,
			GeneratedArea: grp.GeneratedArea,
			TargetArea:    grp.TargetArea,
		})
	}
	return s
}
