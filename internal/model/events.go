package model

import "time"

// Status is the terminal outcome of a generation run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusFailed    Status = "failed"
)

// GroupSummary reports the final fill state of one grading class.
type GroupSummary struct {
	ID            int     `json:"id"`
	Label         string  `json:"label,omitempty"`
	Count         int     `json:"count"`
	GeneratedArea float64 `json:"generated_area"`
	TargetArea    float64 `json:"target_area"`
}

// Summary describes a finished run.
type Summary struct {
	Status          Status         `json:"status"`
	Count           int            `json:"count"`
	TotalArea       float64        `json:"total_area"`
	RegionArea      float64        `json:"region_area"`
	Porosity        float64        `json:"porosity"` // fraction of region area left uncovered
	Duration        time.Duration  `json:"duration_ns"`
	Attempts        int            `json:"attempts"`      // placement rounds, committed plus failed
	FailedRounds    int            `json:"failed_rounds"` // rounds that produced no commit
	CollisionErrors int64          `json:"collision_errors"`
	MeanArea        float64        `json:"mean_area"`
	StdDevArea      float64        `json:"stddev_area"`
	Groups          []GroupSummary `json:"groups"`
}

// EventSink receives generation events. Implementations must tolerate
// being called from the orchestrating goroutine only; no call is ever
// made concurrently with another.
type EventSink interface {
	// Progress is emitted at a throttled rate while the run is active.
	Progress(count int, totalArea, porosity float64)
	// Placement is emitted once per committed aggregate.
	Placement(agg *Aggregate, colorKey string)
	// Terminal is emitted exactly once when the run ends.
	Terminal(summary Summary)
}

// NullSink discards all events.
type NullSink struct{}

func (NullSink) Progress(int, float64, float64) {}
func (NullSink) Placement(*Aggregate, string)   {}
func (NullSink) Terminal(Summary)               {}
