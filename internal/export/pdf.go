package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/petrich/aggpack/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the packed microstructure on one page and the run
// statistics on a second.
func ExportPDF(path string, region model.Region, aggs []*model.Aggregate, groups []model.GroupConfig, summary model.Summary) error {
	if len(aggs) == 0 {
		return fmt.Errorf("no aggregates to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderDrawingPage(pdf, region, aggs, groups)

	pdf.AddPage()
	renderSummaryPage(pdf, summary)

	return pdf.OutputFileAndClose(path)
}

// renderDrawingPage draws the region and every aggregate to scale.
func renderDrawingPage(pdf *fpdf.Fpdf, region model.Region, aggs []*model.Aggregate, groups []model.GroupConfig) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Aggregate Packing: %.0f x %.0f mm, %d particles",
		region.MaxX-region.MinX, region.MaxY-region.MinY, len(aggs))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / (region.MaxX - region.MinX)
	scaleY := drawHeight / (region.MaxY - region.MinY)
	scale := math.Min(scaleX, scaleY)

	canvasW := (region.MaxX - region.MinX) * scale
	canvasH := (region.MaxY - region.MinY) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// PDF page coordinates grow downward; the model Y axis grows upward.
	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-region.MinX)*scale, offsetY + canvasH - (p.Y-region.MinY)*scale
	}

	// Region background, mortar grey.
	pdf.SetFillColor(238, 238, 238)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	colorForGroup := make(map[int]rgb, len(groups))
	for i, grp := range groups {
		colorForGroup[i+1] = displayColor(grp.LayerColor)
	}

	for _, agg := range aggs {
		// ITZ halo first so the outline paints over it.
		if len(agg.Buffered) > 0 {
			pdf.SetFillColor(255, 243, 224)
			drawOutline(pdf, agg.Buffered, toPage, "F")
		}
		col, ok := colorForGroup[agg.GroupID]
		if !ok {
			col = displayColor("")
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		drawOutline(pdf, agg.Outline, toPage, "FD")
	}

	drawGroupLegend(pdf, groups, offsetY+canvasH+5)
}

// drawOutline paints one closed outline as a PDF polygon.
func drawOutline(pdf *fpdf.Fpdf, outline model.Outline, toPage func(model.Point2D) (float64, float64), style string) {
	pts := outline
	if outline.Closed() {
		pts = outline[:len(outline)-1]
	}
	poly := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := toPage(p)
		poly[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.Polygon(poly, style)
}

// drawGroupLegend renders a color swatch per grading group.
func drawGroupLegend(pdf *fpdf.Fpdf, groups []model.GroupConfig, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Groups:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	for i, grp := range groups {
		col := displayColor(grp.LayerColor)
		label := fmt.Sprintf("%d: %s (%.0f%%)", i+1, grp.Label, grp.AreaRatio)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		labelW := pdf.GetStringWidth(label)
		pdf.CellFormat(labelW, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 10
	}
}

// renderSummaryPage draws the run statistics page.
func renderSummaryPage(pdf *fpdf.Fpdf, summary model.Summary) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Generation Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Run Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Status", string(summary.Status)},
		{"Aggregates Placed", fmt.Sprintf("%d", summary.Count)},
		{"Total Area", fmt.Sprintf("%.1f mm²", summary.TotalArea)},
		{"Region Area", fmt.Sprintf("%.1f mm²", summary.RegionArea)},
		{"Porosity", fmt.Sprintf("%.1f%%", summary.Porosity*100)},
		{"Mean Particle Area", fmt.Sprintf("%.2f mm²", summary.MeanArea)},
		{"Area Std Dev", fmt.Sprintf("%.2f mm²", summary.StdDevArea)},
		{"Placement Rounds", fmt.Sprintf("%d", summary.Attempts)},
		{"Failed Rounds", fmt.Sprintf("%d", summary.FailedRounds)},
		{"Duration", summary.Duration.Round(summary.Duration / 100).String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Group Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 30, 55, 55, 35}
	headers := []string{"Group", "Label", "Count", "Generated Area", "Target Area", "Fill"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, g := range summary.Groups {
		fill := 0.0
		if g.TargetArea > 0 {
			fill = g.GeneratedArea / g.TargetArea * 100
		}
		rowData := []string{
			fmt.Sprintf("%d", g.ID),
			g.Label,
			fmt.Sprintf("%d", g.Count),
			fmt.Sprintf("%.1f mm²", g.GeneratedArea),
			fmt.Sprintf("%.1f mm²", g.TargetArea),
			fmt.Sprintf("%.1f%%", fill),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by aggpack", "", 0, "C", false, 0, "")
}
