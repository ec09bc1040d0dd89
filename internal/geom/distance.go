package geom

import (
	"fmt"
	"math"

	"github.com/petrich/aggpack/internal/model"
)

// OutlineDistance computes the exact minimum distance between two closed
// outlines. Intersecting or nested outlines have distance 0. Outlines
// with fewer than 2 points are degenerate and rejected.
func OutlineDistance(a, b model.Outline) (float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, fmt.Errorf("degenerate outline: %d and %d points", len(a), len(b))
	}
	if outlinesIntersect(a, b) {
		return 0, nil
	}
	// No edge crossings: one ring may still contain the other entirely.
	if PointInPolygon(a[0], b) || PointInPolygon(b[0], a) {
		return 0, nil
	}

	min := math.Inf(1)
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			d := segmentDistance(a[i], a[i+1], b[j], b[j+1])
			if d < min {
				min = d
			}
		}
	}
	return min, nil
}

// outlinesIntersect reports whether any pair of edges crosses.
func outlinesIntersect(a, b model.Outline) bool {
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// PointInPolygon tests p against the closed outline with the even-odd
// ray-casting rule.
func PointInPolygon(p model.Point2D, outline model.Outline) bool {
	inside := false
	for i := 0; i < len(outline)-1; i++ {
		a, b := outline[i], outline[i+1]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentDistance returns the minimum distance between segments ab and cd.
func segmentDistance(a, b, c, d model.Point2D) float64 {
	if segmentsIntersect(a, b, c, d) {
		return 0
	}
	m := pointSegmentDistance(a, c, d)
	if v := pointSegmentDistance(b, c, d); v < m {
		m = v
	}
	if v := pointSegmentDistance(c, a, b); v < m {
		m = v
	}
	if v := pointSegmentDistance(d, a, b); v < m {
		m = v
	}
	return m
}

// pointSegmentDistance returns the distance from p to segment ab.
func pointSegmentDistance(p, a, b model.Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(p, model.Point2D{X: a.X + t*dx, Y: a.Y + t*dy})
}

func segmentsIntersect(a, b, c, d model.Point2D) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	// Collinear touching counts as intersection.
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

// cross returns the orientation of p relative to segment ab.
func cross(a, b, p model.Point2D) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment assumes p is collinear with ab and tests containment.
func onSegment(a, b, p model.Point2D) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
