// Package geom is the geometry kernel: randomized outline generation for
// the three aggregate shape classes, area and bounding-circle primitives,
// exact outline distance and the ITZ buffer offset.
package geom

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/petrich/aggpack/internal/model"
)

const minSegments = 8

// EdgeOptions controls the optional short-edge repair pass applied to
// generated polygons.
type EdgeOptions struct {
	Repair        bool
	MinEdgeLength float64 // 0 = size/10
}

// RandomPolygon generates an irregular closed polygon around center.
// Angular steps are drawn uniformly from
// [(2π/sides)(1-irregularity), (2π/sides)(1+irregularity)] and normalized
// so they sum to exactly 2π; per-vertex radii are gaussian around size
// with standard deviation spikiness*size, clamped to [0.3*size, 1.8*size].
// Fewer than 3 sides is a contract violation.
func RandomPolygon(rng *rand.Rand, center model.Point2D, size float64, sides int, irregularity, spikiness float64, opts EdgeOptions) (model.Outline, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", sides)
	}
	irregularity = clamp(irregularity, 0, 1)
	spikiness = clamp(spikiness, 0, 1)

	base := 2 * math.Pi / float64(sides)
	variation := irregularity * base
	steps := make([]float64, sides)
	total := 0.0
	for i := range steps {
		steps[i] = base - variation + rng.Float64()*2*variation
		total += steps[i]
	}
	// Normalize so the steps close the ring exactly.
	scale := 2 * math.Pi / total
	for i := range steps {
		steps[i] *= scale
	}

	outline := make(model.Outline, 0, sides+1)
	angle := rng.Float64() * 2 * math.Pi
	sigma := spikiness * size
	for i := 0; i < sides; i++ {
		r := clamp(rng.NormFloat64()*sigma+size, 0.3*size, 1.8*size)
		outline = append(outline, model.Point2D{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		})
		angle += steps[i]
	}
	outline = append(outline, outline[0])

	if opts.Repair {
		minEdge := opts.MinEdgeLength
		if minEdge <= 0 {
			minEdge = size / 10
		}
		outline = repairShortEdges(outline, minEdge)
	}
	return outline, nil
}

// repairShortEdges runs a single local pass over the closed ring: for
// each edge shorter than minEdge, the leading endpoint slides forward
// along the incoming edge's direction and the trailing endpoint toward
// its successor, each by half the deficit. One pass can leave residually
// short edges at low vertex counts; that is accepted.
func repairShortEdges(points model.Outline, minEdge float64) model.Outline {
	if len(points) < 4 {
		return points
	}
	out := make(model.Outline, len(points))
	copy(out, points)
	sides := len(points) - 1

	for i := 0; i < sides; i++ {
		cur := out[i]
		next := out[i+1]
		edge := Distance(cur, next)
		if edge >= minEdge {
			continue
		}

		prev := out[(i-1+sides)%sides]
		nextNext := out[(i+2)%len(out)]

		px, py := unit(prev.X-cur.X, prev.Y-cur.Y)
		nx, ny := unit(nextNext.X-next.X, nextNext.Y-next.Y)

		adjust := (minEdge - edge) / 2
		out[i] = model.Point2D{X: cur.X - px*adjust, Y: cur.Y - py*adjust}
		out[i+1] = model.Point2D{X: next.X + nx*adjust, Y: next.Y + ny*adjust}
	}
	// Keep the ring closed after the first vertex may have moved.
	out[len(out)-1] = out[0]
	return out
}

// Circle generates a closed circular outline with segments+1 points.
// Fewer than 8 segments is silently raised to 8.
func Circle(center model.Point2D, radius float64, segments int) model.Outline {
	if segments < minSegments {
		segments = minSegments
	}
	outline := make(model.Outline, 0, segments+1)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		outline = append(outline, model.Point2D{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	// Repeat the first point instead of recomputing cos/sin at 2π, which
	// would leave the ring open by a float ulp.
	return append(outline, outline[0])
}

// Ellipse generates a closed elliptical outline, rotated by rotation
// radians about its center. Fewer than 8 segments is silently raised to 8.
func Ellipse(center model.Point2D, major, minor, rotation float64, segments int) model.Outline {
	if segments < minSegments {
		segments = minSegments
	}
	cosR := math.Cos(rotation)
	sinR := math.Sin(rotation)
	outline := make(model.Outline, 0, segments+1)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ex := major * math.Cos(a)
		ey := minor * math.Sin(a)
		outline = append(outline, model.Point2D{
			X: center.X + ex*cosR - ey*sinR,
			Y: center.Y + ex*sinR + ey*cosR,
		})
	}
	return append(outline, outline[0])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unit(dx, dy float64) (float64, float64) {
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return dx / l, dy / l
}
