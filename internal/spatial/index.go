// Package spatial provides the two interchangeable spatial partitioning
// strategies (region quadtree and k-d tree) behind a single Index
// contract. Queries are bounding-box only; callers refine candidates with
// exact geometry.
package spatial

import (
	"github.com/petrich/aggpack/internal/model"
)

// Item is anything with an axis-aligned bounding rectangle.
type Item interface {
	Bounds() model.Rect
}

// Stats carries diagnostic counters for an index instance.
type Stats struct {
	Nodes    int
	Objects  int
	MaxDepth int
	Capacity int // configured objects-per-node threshold
}

// Index is the contract the packing engine depends on. A committed
// aggregate is inserted into exactly one index instance for the lifetime
// of a run; the index is rebuilt at the start of each run.
type Index interface {
	// Insert adds an item. It returns false when the item's bounds fall
	// entirely outside the index bounds.
	Insert(item Item) bool
	// Search returns every item whose bounds intersect the query
	// rectangle. The test is bounding-box only.
	Search(bounds model.Rect) []Item
	// Clear discards all items.
	Clear()
	// Stats returns diagnostic counters.
	Stats() Stats
}

// Params sizes an index for an expected particle scale.
type Params struct {
	MaxDepth   int
	MaxObjects int
}

// Tune derives index parameters from the average particle size: node
// capacity and depth both scale inversely with particle size, so fine
// grading (many small particles) gets roomier nodes and a deeper tree
// while coarse grading bottoms out at the clamps.
func Tune(avgParticleSize float64) Params {
	if avgParticleSize <= 0 {
		avgParticleSize = 1
	}
	maxObjects := int(20 / (avgParticleSize / 5.0))
	if maxObjects < 5 {
		maxObjects = 5
	}
	maxDepth := int(8 + 5.0/avgParticleSize)
	if maxDepth > 10 {
		maxDepth = 10
	}
	if maxDepth < 5 {
		maxDepth = 5
	}
	return Params{MaxDepth: maxDepth, MaxObjects: maxObjects}
}

// New builds an index of the requested kind over the given bounds.
func New(kind model.IndexKind, bounds model.Rect, p Params) Index {
	if kind == model.IndexKDTree {
		return NewKDTree(bounds, p)
	}
	return NewQuadtree(bounds, p)
}

// center returns the midpoint of an item's bounds, the split key used by
// the k-d tree.
func center(item Item) model.Point2D {
	return item.Bounds().Center()
}
