package spatial

import (
	"sort"

	"github.com/petrich/aggpack/internal/model"
)

// KDTree is a 2-d tree splitting on x at even depths and y at odd depths.
// A leaf appends items until its count exceeds the capacity threshold,
// then bulk-sorts them by center on the node's axis and splits at the
// median item's center. Items are distributed only at split time; later
// inserts route by center against the stored median.
type KDTree struct {
	root   *kdNode
	bounds model.Rect
	params Params
}

type kdNode struct {
	depth  int
	axis   int // 0 = x, 1 = y
	items  []Item
	left   *kdNode
	right  *kdNode
	median float64
	bounds model.Rect // union of inserted item bounds, for query pruning
	filled bool
}

// NewKDTree builds an empty k-d tree. The bounds argument records the
// index extent for the insert containment test; node bounds grow from the
// items actually inserted.
func NewKDTree(bounds model.Rect, p Params) *KDTree {
	return &KDTree{
		root:   &kdNode{},
		bounds: bounds,
		params: p,
	}
}

func (t *KDTree) Insert(item Item) bool {
	if !t.bounds.Intersects(item.Bounds()) {
		return false
	}
	t.root.insert(item, t.params)
	return true
}

func (t *KDTree) Search(bounds model.Rect) []Item {
	var results []Item
	t.root.search(bounds, &results)
	return results
}

func (t *KDTree) Clear() {
	t.root = &kdNode{}
}

func (t *KDTree) Stats() Stats {
	s := Stats{Capacity: t.params.MaxObjects}
	t.root.stats(&s)
	return s
}

func (n *kdNode) insert(item Item, p Params) {
	n.grow(item.Bounds())

	if n.left == nil && n.right == nil {
		n.items = append(n.items, item)
		if len(n.items) > p.MaxObjects && n.depth < p.MaxDepth {
			n.split(p)
		}
		return
	}

	if axisValue(center(item), n.axis) < n.median {
		n.left.insert(item, p)
	} else {
		n.right.insert(item, p)
	}
}

// split bulk-sorts the held items on the node's axis and hands the halves
// to fresh children. The split value is the median item's center.
func (n *kdNode) split(p Params) {
	sort.Slice(n.items, func(i, j int) bool {
		return axisValue(center(n.items[i]), n.axis) < axisValue(center(n.items[j]), n.axis)
	})
	mid := len(n.items) / 2
	n.median = axisValue(center(n.items[mid]), n.axis)

	n.left = &kdNode{depth: n.depth + 1, axis: (n.depth + 1) % 2}
	n.right = &kdNode{depth: n.depth + 1, axis: (n.depth + 1) % 2}
	for _, item := range n.items[:mid] {
		n.left.insert(item, p)
	}
	for _, item := range n.items[mid:] {
		n.right.insert(item, p)
	}
	n.items = nil
}

func (n *kdNode) search(bounds model.Rect, results *[]Item) {
	if !n.filled || !n.bounds.Intersects(bounds) {
		return
	}
	if n.left == nil && n.right == nil {
		for _, item := range n.items {
			if item.Bounds().Intersects(bounds) {
				*results = append(*results, item)
			}
		}
		return
	}
	n.left.search(bounds, results)
	n.right.search(bounds, results)
}

// grow expands the node's bounds to cover a newly inserted item. Item
// extents can spill past the median split, so pruning relies on these
// accumulated bounds rather than the split planes.
func (n *kdNode) grow(b model.Rect) {
	if !n.filled {
		n.bounds = b
		n.filled = true
		return
	}
	n.bounds = n.bounds.Union(b)
}

func (n *kdNode) stats(s *Stats) {
	s.Nodes++
	s.Objects += len(n.items)
	if n.depth > s.MaxDepth {
		s.MaxDepth = n.depth
	}
	if n.left != nil {
		n.left.stats(s)
	}
	if n.right != nil {
		n.right.stats(s)
	}
}

func axisValue(p model.Point2D, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}
