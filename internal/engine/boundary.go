package engine

import "github.com/petrich/aggpack/internal/model"

// adjustBoundary packs near-edge candidates flush against the region
// boundary. An outline whose bounding circle comes within
// radius + 2*minDistance of any edge has its center snapped to
// minDistance from the nearest edge; vertices pushed out by the snap are
// clamped per axis onto the region inset by minDistance. Clamping
// flattens the outline against the boundary rather than repairing it;
// the flattened shape is what gets measured and committed.
func (g *Generator) adjustBoundary(outline model.Outline, center model.Point2D, radius float64) (model.Outline, bool) {
	minD := g.settings.MinDistance
	near := radius + 2*minD

	left := center.X - g.region.MinX
	right := g.region.MaxX - center.X
	bottom := center.Y - g.region.MinY
	top := g.region.MaxY - center.Y

	if left >= near && right >= near && bottom >= near && top >= near {
		return outline, false
	}

	// Snap toward the single nearest edge only.
	target := center
	switch min(left, right, bottom, top) {
	case left:
		target.X = g.region.MinX + minD
	case right:
		target.X = g.region.MaxX - minD
	case bottom:
		target.Y = g.region.MinY + minD
	default:
		target.Y = g.region.MaxY - minD
	}

	outline = g.clampOutline(outline.Translate(target.X-center.X, target.Y-center.Y), minD)
	return outline, true
}

// clampOutline forces every vertex into the region inset by minDistance,
// keeping the ring closed.
func (g *Generator) clampOutline(outline model.Outline, minD float64) model.Outline {
	loX, hiX := g.region.MinX+minD, g.region.MaxX-minD
	loY, hiY := g.region.MinY+minD, g.region.MaxY-minD

	out := make(model.Outline, len(outline))
	for i, p := range outline {
		if p.X < loX {
			p.X = loX
		} else if p.X > hiX {
			p.X = hiX
		}
		if p.Y < loY {
			p.Y = loY
		} else if p.Y > hiY {
			p.Y = hiY
		}
		out[i] = p
	}
	if len(out) > 1 {
		out[len(out)-1] = out[0]
	}
	return out
}
