package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/petrich/aggpack/internal/model"
)

// csvHeader is the particle table column set shared by the CSV and XLSX
// exporters.
var csvHeader = []string{
	"ID", "Group_ID", "Center_X", "Center_Y", "Radius", "Area",
	"Shape", "Shape Parameters", "ITZ_Thickness",
}

// ExportCSV writes one row per aggregate in placement order.
func ExportCSV(path string, aggs []*model.Aggregate) error {
	if len(aggs) == 0 {
		return fmt.Errorf("no aggregates to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, agg := range aggs {
		if err := w.Write(aggregateRow(agg)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write aggregate %s: %w", agg.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Close()
}

// aggregateRow renders one particle table row.
func aggregateRow(agg *model.Aggregate) []string {
	return []string{
		agg.ID,
		strconv.Itoa(agg.GroupID),
		fmt.Sprintf("%.4f", agg.Center.X),
		fmt.Sprintf("%.4f", agg.Center.Y),
		fmt.Sprintf("%.4f", agg.Radius),
		fmt.Sprintf("%.4f", agg.Area),
		string(agg.Params.Type),
		agg.Params.String(),
		fmt.Sprintf("%.2f", agg.ITZThickness),
	}
}
