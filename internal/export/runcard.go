package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/petrich/aggpack/internal/model"
)

// RunCard holds the data encoded into the run card's QR code, enough to
// identify and reproduce a generation run.
type RunCard struct {
	Status     string    `json:"status"`
	Count      int       `json:"count"`
	Porosity   float64   `json:"porosity"`
	TotalArea  float64   `json:"total_area_mm2"`
	RegionArea float64   `json:"region_area_mm2"`
	Seed       int64     `json:"seed"`
	Mode       string    `json:"mode"`
	Generated  time.Time `json:"generated"`
}

// Card layout constants (A6 landscape in mm).
const (
	cardWidth   = 148.0
	cardHeight  = 105.0
	cardMargin  = 8.0
	cardQRSize  = 42.0
	cardLineGap = 6.0
)

// ExportRunCard writes a single-page PDF card summarizing the run, with a
// QR code encoding the card data as JSON.
func ExportRunCard(path string, summary model.Summary, settings model.Settings) error {
	card := RunCard{
		Status:     string(summary.Status),
		Count:      summary.Count,
		Porosity:   summary.Porosity,
		TotalArea:  summary.TotalArea,
		RegionArea: summary.RegionArea,
		Seed:       settings.Seed,
		Mode:       string(settings.Mode),
		Generated:  time.Now(),
	}

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal run card: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A6", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.Rect(cardMargin/2, cardMargin/2, cardWidth-cardMargin, cardHeight-cardMargin, "D")

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(cardMargin, cardMargin)
	pdf.CellFormat(cardWidth-2*cardMargin-cardQRSize, 6, "Aggregate Packing Run", "", 1, "L", false, 0, "")

	pdf.RegisterImageOptionsReader("runcard_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("runcard_qr", cardWidth-cardMargin-cardQRSize, cardMargin, cardQRSize, cardQRSize,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	lines := []struct {
		label string
		value string
	}{
		{"Status", card.Status},
		{"Mode", card.Mode},
		{"Aggregates", fmt.Sprintf("%d", card.Count)},
		{"Porosity", fmt.Sprintf("%.1f%%", card.Porosity*100)},
		{"Total Area", fmt.Sprintf("%.1f mm²", card.TotalArea)},
		{"Seed", fmt.Sprintf("%d", card.Seed)},
	}

	y := cardMargin + 12.0
	for _, line := range lines {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(cardMargin, y)
		pdf.CellFormat(26, 5, line.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(50, 5, line.value, "", 0, "L", false, 0, "")
		y += cardLineGap
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(cardMargin, cardHeight-cardMargin-4)
	pdf.CellFormat(cardWidth-2*cardMargin, 4, card.Generated.Format("2006-01-02 15:04:05"), "", 0, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
