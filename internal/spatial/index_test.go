package spatial

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrich/aggpack/internal/model"
)

// boxItem is a minimal Item for index tests.
type boxItem struct {
	id int
	b  model.Rect
}

func (b *boxItem) Bounds() model.Rect { return b.b }

func randomItems(n int, extent float64, seed int64) []*boxItem {
	rng := rand.New(rand.NewSource(seed))
	items := make([]*boxItem, n)
	for i := range items {
		x := rng.Float64() * (extent - 4)
		y := rng.Float64() * (extent - 4)
		w := 0.5 + rng.Float64()*3
		h := 0.5 + rng.Float64()*3
		items[i] = &boxItem{id: i, b: model.Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}}
	}
	return items
}

func eachKind(t *testing.T, fn func(t *testing.T, kind model.IndexKind)) {
	for _, kind := range []model.IndexKind{model.IndexQuadtree, model.IndexKDTree} {
		t.Run(string(kind), func(t *testing.T) { fn(t, kind) })
	}
}

func TestIndex_FullBoundsSearchReturnsEverything(t *testing.T) {
	eachKind(t, func(t *testing.T, kind model.IndexKind) {
		bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
		idx := New(kind, bounds, Params{MaxDepth: 8, MaxObjects: 8})

		items := randomItems(500, 100, 3)
		for _, item := range items {
			require.True(t, idx.Insert(item))
		}

		hits := idx.Search(bounds)
		assert.Len(t, hits, len(items), "a whole-bounds query must return every item")
	})
}

func TestIndex_SearchMatchesLinearScan(t *testing.T) {
	eachKind(t, func(t *testing.T, kind model.IndexKind) {
		bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
		idx := New(kind, bounds, Params{MaxDepth: 8, MaxObjects: 6})

		items := randomItems(300, 100, 11)
		for _, item := range items {
			require.True(t, idx.Insert(item))
		}

		queries := []model.Rect{
			{MinX: 10, MinY: 10, MaxX: 30, MaxY: 30},
			{MinX: 0, MinY: 0, MaxX: 5, MaxY: 100},
			{MinX: 48, MinY: 48, MaxX: 52, MaxY: 52},
			{MinX: 90, MinY: 0, MaxX: 100, MaxY: 10},
		}

		for qi, q := range queries {
			want := make(map[int]bool)
			for _, item := range items {
				if q.Intersects(item.b) {
					want[item.id] = true
				}
			}

			got := make(map[int]bool)
			for _, hit := range idx.Search(q) {
				got[hit.(*boxItem).id] = true
			}

			// The index may not return false positives or drop hits.
			assert.Equal(t, want, got, fmt.Sprintf("query %d", qi))
		}
	})
}

func TestIndex_InsertOutsideBounds(t *testing.T) {
	eachKind(t, func(t *testing.T, kind model.IndexKind) {
		bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
		idx := New(kind, bounds, Params{MaxDepth: 5, MaxObjects: 5})

		outside := &boxItem{b: model.Rect{MinX: 20, MinY: 20, MaxX: 22, MaxY: 22}}
		assert.False(t, idx.Insert(outside))
		assert.Empty(t, idx.Search(bounds.Expand(50)))
	})
}

func TestIndex_Clear(t *testing.T) {
	eachKind(t, func(t *testing.T, kind model.IndexKind) {
		bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
		idx := New(kind, bounds, Params{MaxDepth: 8, MaxObjects: 4})

		for _, item := range randomItems(100, 100, 5) {
			idx.Insert(item)
		}
		require.NotEmpty(t, idx.Search(bounds))

		idx.Clear()
		assert.Empty(t, idx.Search(bounds))
		assert.Equal(t, 0, idx.Stats().Objects)
	})
}

func TestIndex_StatsCountObjects(t *testing.T) {
	eachKind(t, func(t *testing.T, kind model.IndexKind) {
		bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
		idx := New(kind, bounds, Params{MaxDepth: 8, MaxObjects: 4})

		items := randomItems(200, 100, 9)
		for _, item := range items {
			idx.Insert(item)
		}

		s := idx.Stats()
		assert.Equal(t, len(items), s.Objects)
		assert.Greater(t, s.Nodes, 1, "200 items over capacity 4 must split")
		assert.Equal(t, 4, s.Capacity)
	})
}

func TestQuadtree_StraddlerStaysInParent(t *testing.T) {
	bounds := model.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	q := NewQuadtree(bounds, Params{MaxDepth: 5, MaxObjects: 1})

	// Items in opposite quadrants force a split; the straddler covers the
	// split lines and cannot descend.
	a := &boxItem{id: 1, b: model.Rect{MinX: 10, MinY: 10, MaxX: 12, MaxY: 12}}
	b := &boxItem{id: 2, b: model.Rect{MinX: 80, MinY: 80, MaxX: 82, MaxY: 82}}
	straddler := &boxItem{id: 3, b: model.Rect{MinX: 45, MinY: 45, MaxX: 55, MaxY: 55}}

	require.True(t, q.Insert(a))
	require.True(t, q.Insert(b))
	require.True(t, q.Insert(straddler))

	// Every query containing the straddler's bounds must see it exactly once.
	hits := q.Search(model.Rect{MinX: 40, MinY: 40, MaxX: 60, MaxY: 60})
	count := 0
	for _, h := range hits {
		if h.(*boxItem).id == 3 {
			count++
		}
	}
	assert.Equal(t, 1, count, "straddlers are stored once, in the parent")
}

func TestTune_ScalesWithParticleSize(t *testing.T) {
	fine := Tune(1)
	coarse := Tune(20)

	assert.GreaterOrEqual(t, fine.MaxDepth, coarse.MaxDepth, "fine particles deepen the tree")
	assert.GreaterOrEqual(t, fine.MaxObjects, coarse.MaxObjects)

	// Clamps hold at the extremes.
	assert.Equal(t, 5, Tune(1000).MaxObjects)
	assert.LessOrEqual(t, Tune(0.01).MaxDepth, 10)
	assert.GreaterOrEqual(t, Tune(1000).MaxDepth, 5)
}
