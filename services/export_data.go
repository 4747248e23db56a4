package services

import "time"

// BreakdownExportData holds everything needed to render the project cost
// breakdown as a workbook.
type BreakdownExportData struct {
	ProjectName   string
	District      string
	Mode          ProjectMode
	GeneratedDate string
	Rows          []BreakdownRow
	SubTotal      float64
	TotalVAT      float64
	TotalTranspo  float64
	GrandTotal    float64
}

// BuildBreakdownExport shapes an aggregation result for export. The column
// totals are recomputed from the rows so the exported sheet always foots.
func BuildBreakdownExport(projectName, district string, mode ProjectMode, generated time.Time, summary BOQSummary) BreakdownExportData {
	data := BreakdownExportData{
		ProjectName:   projectName,
		District:      district,
		Mode:          mode,
		GeneratedDate: generated.Format("2006-01-02"),
		Rows:          summary.Rows,
		GrandTotal:    summary.TotalBOQAmount,
	}
	for _, row := range summary.Rows {
		data.SubTotal += row.Amount
		data.TotalVAT += row.VATAmount
		data.TotalTranspo += row.TransportCost
	}
	return data
}
