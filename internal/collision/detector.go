// Package collision implements the hierarchical collision test used by
// the packing engine: spatial-index prune, bounding-box prune, then exact
// minimum-distance computation between outlines and their ITZ halos.
package collision

import (
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"github.com/petrich/aggpack/internal/geom"
	"github.com/petrich/aggpack/internal/model"
	"github.com/petrich/aggpack/internal/spatial"
)

// Detector runs hierarchical collision checks. It is safe for concurrent
// use: candidate attempts share one detector while probing a stable
// committed snapshot.
type Detector struct {
	// Vectorized replaces the per-pair box pre-test with a single batch
	// bounds-overlap computation over the whole candidate set. The
	// observable result is identical.
	Vectorized bool

	errCount atomic.Int64
}

// ErrorCount reports how many exact-distance computations failed and were
// skipped. Failed pairs contribute no collision; the counter surfaces the
// anomaly in the run summary.
func (d *Detector) ErrorCount() int64 {
	return d.errCount.Load()
}

// ResetErrors zeroes the anomaly counter at run start.
func (d *Detector) ResetErrors() {
	d.errCount.Store(0)
}

// Collides reports whether the candidate outline (or its buffer halo,
// when present) comes within minDistance of any existing aggregate. When
// an index is supplied the search is restricted to index hits; existing
// is the fallback set. The first collision found short-circuits.
func (d *Detector) Collides(outline, buffered model.Outline, existing []*model.Aggregate, minDistance float64, index spatial.Index) bool {
	queryBounds := outline.Bounds().Expand(minDistance)
	if len(buffered) > 0 {
		queryBounds = queryBounds.Union(buffered.Bounds().Expand(minDistance))
	}

	candidates := existing
	if index != nil {
		hits := index.Search(queryBounds)
		candidates = make([]*model.Aggregate, 0, len(hits))
		for _, h := range hits {
			if agg, ok := h.(*model.Aggregate); ok {
				candidates = append(candidates, agg)
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}

	var survivors []*model.Aggregate
	if d.Vectorized {
		survivors = batchBoundsFilter(queryBounds, candidates)
	} else {
		for _, agg := range candidates {
			if queryBounds.Intersects(agg.Bounds()) {
				survivors = append(survivors, agg)
			}
		}
	}

	for _, agg := range survivors {
		if d.near(outline, agg, minDistance) {
			return true
		}
		if len(buffered) > 0 && d.near(buffered, agg, minDistance) {
			return true
		}
	}
	return false
}

// near tests one candidate ring against both geometries of an existing
// aggregate. Distance-computation failures are skipped, not fatal.
func (d *Detector) near(ring model.Outline, agg *model.Aggregate, minDistance float64) bool {
	dist, err := geom.OutlineDistance(ring, agg.Outline)
	if err != nil {
		d.errCount.Add(1)
	} else if dist < minDistance {
		return true
	}
	if len(agg.Buffered) > 0 {
		dist, err = geom.OutlineDistance(ring, agg.Buffered)
		if err != nil {
			d.errCount.Add(1)
		} else if dist < minDistance {
			return true
		}
	}
	return false
}

// batchBoundsFilter computes the bounds-overlap mask for the whole
// candidate set in one pass over a dense bounds matrix. Logically
// equivalent to the per-pair Intersects test.
func batchBoundsFilter(query model.Rect, candidates []*model.Aggregate) []*model.Aggregate {
	n := len(candidates)
	data := make([]float64, 0, n*4)
	for _, agg := range candidates {
		b := agg.Bounds()
		data = append(data, b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	bounds := mat.NewDense(n, 4, data)

	survivors := make([]*model.Aggregate, 0, n)
	for i := 0; i < n; i++ {
		row := bounds.RawRowView(i)
		overlap := !(query.MaxX < row[0] || query.MinX > row[2] ||
			query.MaxY < row[1] || query.MinY > row[3])
		if overlap {
			survivors = append(survivors, candidates[i])
		}
	}
	return survivors
}
