package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/petrich/aggpack/internal/model"
)

// ExportDXF writes a layered CAD drawing: the region boundary on its own
// layer, one layer per grading group for aggregate outlines, and a
// matching _ITZ layer per group for the buffered halos.
func ExportDXF(path string, region model.Region, aggs []*model.Aggregate, groups []model.GroupConfig) error {
	if len(aggs) == 0 {
		return fmt.Errorf("no aggregates to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("Region", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add region layer: %w", err)
	}
	boundary := model.Outline{
		{X: region.MinX, Y: region.MinY},
		{X: region.MaxX, Y: region.MinY},
		{X: region.MaxX, Y: region.MaxY},
		{X: region.MinX, Y: region.MaxY},
		{X: region.MinX, Y: region.MinY},
	}
	if err := addOutline(d, boundary); err != nil {
		return fmt.Errorf("failed to draw region boundary: %w", err)
	}

	for i, grp := range groups {
		groupID := i + 1
		layer := fmt.Sprintf("Group_%d", groupID)
		if grp.Label != "" {
			layer = fmt.Sprintf("Group_%d_%s", groupID, grp.Label)
		}
		col := dxfColor(grp.LayerColor)

		if _, err := d.AddLayer(layer, col, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layer, err)
		}
		for _, agg := range aggs {
			if agg.GroupID != groupID {
				continue
			}
			if err := addOutline(d, agg.Outline); err != nil {
				return fmt.Errorf("failed to draw aggregate %s: %w", agg.ID, err)
			}
		}

		if grp.ITZThickness <= 0 {
			continue
		}
		if _, err := d.AddLayer(layer+"_ITZ", col, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s_ITZ: %w", layer, err)
		}
		for _, agg := range aggs {
			if agg.GroupID != groupID || len(agg.Buffered) == 0 {
				continue
			}
			if err := addOutline(d, agg.Buffered); err != nil {
				return fmt.Errorf("failed to draw ITZ halo of %s: %w", agg.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF file: %w", err)
	}
	return nil
}

// addOutline emits one closed lightweight polyline on the current layer.
// The trailing duplicate closing point is dropped; the polyline's closed
// flag carries that information.
func addOutline(d *drawing.Drawing, outline model.Outline) error {
	pts := outline
	if outline.Closed() {
		pts = outline[:len(outline)-1]
	}
	vertices := make([][]float64, len(pts))
	for i, p := range pts {
		vertices[i] = []float64{p.X, p.Y}
	}
	_, err := d.LwPolyline(true, vertices...)
	return err
}
