package main

import (
	"fmt"

	"github.com/petrich/aggpack/internal/model"
)

// consoleSink prints throttled progress lines and the final summary to
// stdout. Placement events are too frequent to print individually.
type consoleSink struct{}

func (consoleSink) Progress(count int, totalArea, porosity float64) {
	fmt.Printf("\rplaced %d aggregates, %.1f mm², porosity %.1f%%   ", count, totalArea, porosity*100)
}

func (consoleSink) Placement(*model.Aggregate, string) {}

func (consoleSink) Terminal(s model.Summary) {
	fmt.Printf("\r%-60s\n", "")
	fmt.Printf("status:        %s\n", s.Status)
	fmt.Printf("aggregates:    %d\n", s.Count)
	fmt.Printf("total area:    %.1f mm² of %.1f mm²\n", s.TotalArea, s.RegionArea)
	fmt.Printf("porosity:      %.1f%%\n", s.Porosity*100)
	fmt.Printf("rounds:        %d (%d failed)\n", s.Attempts, s.FailedRounds)
	fmt.Printf("duration:      %s\n", s.Duration)
	if s.CollisionErrors > 0 {
		fmt.Printf("warning:       %d collision checks failed and were skipped\n", s.CollisionErrors)
	}
	for _, g := range s.Groups {
		fill := 0.0
		if g.TargetArea > 0 {
			fill = g.GeneratedArea / g.TargetArea * 100
		}
		fmt.Printf("  group %d (%s): %d placed, %.1f / %.1f mm² (%.0f%%)\n",
			g.ID, g.Label, g.Count, g.GeneratedArea, g.TargetArea, fill)
	}
}
