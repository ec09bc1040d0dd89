package geom

import (
	"math"

	"github.com/petrich/aggpack/internal/model"
)

// Distance returns the euclidean distance between two points.
func Distance(a, b model.Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PolygonArea computes the area of a closed outline with the shoelace
// formula. Outlines with fewer than 3 distinct vertices have zero area.
func PolygonArea(outline model.Outline) float64 {
	if len(outline) < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(outline)-1; i++ {
		sum += outline[i].X*outline[i+1].Y - outline[i+1].X*outline[i].Y
	}
	return math.Abs(sum) / 2
}

// CircleArea returns the area of a circle of the given radius.
func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// EllipseArea returns the area of an ellipse with the given semi-axes.
func EllipseArea(major, minor float64) float64 {
	return math.Pi * major * minor
}

// BoundingCircle returns the centroid of the outline's vertices and the
// maximum vertex distance from it. This is deliberately not the minimal
// enclosing circle: the centroid approximation is cheap and sufficient
// for the spacing and boundary heuristics built on top of it.
func BoundingCircle(outline model.Outline) (model.Point2D, float64) {
	if len(outline) == 0 {
		return model.Point2D{}, 0
	}
	var cx, cy float64
	for _, p := range outline {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(outline))
	center := model.Point2D{X: cx / n, Y: cy / n}

	maxR := 0.0
	for _, p := range outline {
		if d := Distance(center, p); d > maxR {
			maxR = d
		}
	}
	return center, maxR
}
