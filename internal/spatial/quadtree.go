package spatial

import "github.com/petrich/aggpack/internal/model"

// Quadtree is a region quadtree. A node holds items directly until its
// object count exceeds the capacity threshold, then splits into four
// equal quadrants. Items that straddle a split line stay in the parent;
// no item is duplicated across children. At max depth nodes never split.
type Quadtree struct {
	root   *quadNode
	bounds model.Rect
	params Params
}

type quadNode struct {
	bounds   model.Rect
	depth    int
	items    []Item
	children [4]*quadNode // NW, NE, SW, SE; nil until divided
	divided  bool
}

// NewQuadtree builds an empty quadtree over the given bounds.
func NewQuadtree(bounds model.Rect, p Params) *Quadtree {
	return &Quadtree{
		root:   &quadNode{bounds: bounds},
		bounds: bounds,
		params: p,
	}
}

func (q *Quadtree) Insert(item Item) bool {
	if !q.bounds.Intersects(item.Bounds()) {
		return false
	}
	q.root.insert(item, q.params)
	return true
}

func (q *Quadtree) Search(bounds model.Rect) []Item {
	var results []Item
	q.root.search(bounds, &results)
	return results
}

func (q *Quadtree) Clear() {
	q.root = &quadNode{bounds: q.bounds}
}

func (q *Quadtree) Stats() Stats {
	s := Stats{Capacity: q.params.MaxObjects}
	q.root.stats(&s)
	return s
}

func (n *quadNode) insert(item Item, p Params) {
	if !n.divided {
		if len(n.items) < p.MaxObjects || n.depth >= p.MaxDepth {
			n.items = append(n.items, item)
			return
		}
		n.divide(p)
	}
	if child := n.childFor(item.Bounds()); child != nil {
		child.insert(item, p)
		return
	}
	// Straddles a split line; the parent keeps it.
	n.items = append(n.items, item)
}

// divide splits the node into four quadrants and pushes down every held
// item that fits entirely inside one child.
func (n *quadNode) divide(p Params) {
	b := n.bounds
	midX := (b.MinX + b.MaxX) / 2
	midY := (b.MinY + b.MaxY) / 2
	d := n.depth + 1
	n.children = [4]*quadNode{
		{bounds: model.Rect{MinX: b.MinX, MinY: midY, MaxX: midX, MaxY: b.MaxY}, depth: d},
		{bounds: model.Rect{MinX: midX, MinY: midY, MaxX: b.MaxX, MaxY: b.MaxY}, depth: d},
		{bounds: model.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: midX, MaxY: midY}, depth: d},
		{bounds: model.Rect{MinX: midX, MinY: b.MinY, MaxX: b.MaxX, MaxY: midY}, depth: d},
	}
	n.divided = true

	kept := n.items[:0]
	for _, item := range n.items {
		if child := n.childFor(item.Bounds()); child != nil {
			child.insert(item, p)
		} else {
			kept = append(kept, item)
		}
	}
	n.items = kept
}

// childFor returns the single child that fully contains the bounds, or
// nil when the bounds straddle a split line.
func (n *quadNode) childFor(b model.Rect) *quadNode {
	for _, child := range n.children {
		if child.bounds.Contains(b) {
			return child
		}
	}
	return nil
}

func (n *quadNode) search(bounds model.Rect, results *[]Item) {
	if !n.bounds.Intersects(bounds) {
		return
	}
	for _, item := range n.items {
		if item.Bounds().Intersects(bounds) {
			*results = append(*results, item)
		}
	}
	if n.divided {
		for _, child := range n.children {
			child.search(bounds, results)
		}
	}
}

func (n *quadNode) stats(s *Stats) {
	s.Nodes++
	s.Objects += len(n.items)
	if n.depth > s.MaxDepth {
		s.MaxDepth = n.depth
	}
	if n.divided {
		for _, child := range n.children {
			child.stats(s)
		}
	}
}
