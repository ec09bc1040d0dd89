package geom

import (
	"math"

	"github.com/petrich/aggpack/internal/model"
)

// Buffer expands a closed outline outward by thickness, producing the ITZ
// halo ring. Vertices are displaced along the miter direction of their two
// incident edge normals; sharp spikes have the miter length capped to keep
// the halo from exploding. A non-positive thickness returns nil.
func Buffer(outline model.Outline, thickness float64) model.Outline {
	if thickness <= 0 || len(outline) < 4 {
		return nil
	}
	n := len(outline) - 1 // distinct vertices, last point repeats the first

	// Outward side depends on winding; signed shoelace area settles it.
	sign := 1.0
	if signedArea(outline) > 0 {
		sign = -1.0 // counter-clockwise ring: right-hand normal points outward
	}

	const miterLimit = 3.0

	out := make(model.Outline, 0, n+1)
	for i := 0; i < n; i++ {
		prev := outline[(i-1+n)%n]
		cur := outline[i]
		next := outline[i+1]

		// Edge normals of (prev->cur) and (cur->next).
		n1x, n1y := edgeNormal(prev, cur, sign)
		n2x, n2y := edgeNormal(cur, next, sign)

		mx := n1x + n2x
		my := n1y + n2y
		ml := math.Hypot(mx, my)
		if ml == 0 {
			// Degenerate spike; fall back to the first edge normal.
			mx, my, ml = n1x, n1y, 1
		}
		mx /= ml
		my /= ml

		// Miter length grows as the corner sharpens: t / cos(theta/2).
		cosHalf := mx*n1x + my*n1y
		scale := thickness
		if cosHalf > 1e-9 {
			scale = thickness / cosHalf
		}
		if scale > thickness*miterLimit {
			scale = thickness * miterLimit
		}

		out = append(out, model.Point2D{X: cur.X + mx*scale, Y: cur.Y + my*scale})
	}
	out = append(out, out[0])
	return out
}

// edgeNormal returns the unit normal of edge a->b on the outward side
// selected by sign.
func edgeNormal(a, b model.Point2D, sign float64) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return sign * -dy / l, sign * dx / l
}

func signedArea(outline model.Outline) float64 {
	sum := 0.0
	for i := 0; i < len(outline)-1; i++ {
		sum += outline[i].X*outline[i+1].Y - outline[i+1].X*outline[i].Y
	}
	return sum / 2
}
