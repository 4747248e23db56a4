package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// AnalysisExportData holds everything needed to render a norm's rate
// analysis as a PDF document.
type AnalysisExportData struct {
	ProjectName   string
	Mode          ProjectMode
	GeneratedDate string
	Norm          Norm
	Resolution    Resolution
	UnitRate      float64
}

// GenerateAnalysisPDF creates a rate-analysis PDF for one norm using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateAnalysisPDF(data AnalysisExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addAnalysisHeader(m, data)
	addAnalysisNormBlock(m, data)
	addAnalysisResourceTable(m, data)
	addAnalysisTotals(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addAnalysisHeader adds the project name, document title and date.
func addAnalysisHeader(m core.Maroto, data AnalysisExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.ProjectName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("RATE ANALYSIS", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Pricing mode: %s", data.Mode), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New("Date: "+data.GeneratedDate, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addAnalysisNormBlock adds the norm identification details.
func addAnalysisNormBlock(m core.Maroto, data AnalysisExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("WORK ITEM", labelStyle)),
		),
		row.New(7).Add(
			col.New(12).Add(text.New(data.Norm.Description, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
		row.New(6).Add(
			col.New(3).Add(text.New(fmt.Sprintf("Norm: %s %s", data.Norm.Type, data.Norm.Code), valueStyle)),
			col.New(3).Add(text.New(fmt.Sprintf("Basis: %s %s", FormatQty(data.Norm.Basis()), data.Norm.Unit), valueStyle)),
			col.New(3).Add(text.New("Ref SS: "+data.Norm.RefSS, valueStyle)),
		),
	)

	m.AddRows(row.New(3))
}

// addAnalysisResourceTable adds the per-resource cost table.
func addAnalysisResourceTable(m core.Maroto, data AnalysisExportData) {
	headerStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	headerRightStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(4).Add(text.New("Particulars", headerStyle)),
			col.New(2).Add(text.New("Type", headerStyle)),
			col.New(1).Add(text.New("Unit", headerStyle)),
			col.New(1).Add(text.New("Qty", headerRightStyle)),
			col.New(2).Add(text.New("Rate", headerRightStyle)),
			col.New(2).Add(text.New("Amount", headerRightStyle)),
		),
	)

	cellStyle := props.Text{Size: 8, Align: align.Left}
	cellRightStyle := props.Text{Size: 8, Align: align.Right}

	for _, r := range data.Resolution.Rows {
		qty := FormatQty(r.Quantity)
		rate := FormatNPR(r.Rate)
		resType := string(r.Resource.Type)
		if r.Resource.IsPercentage {
			qty = FormatQty(r.Quantity) + "%"
			rate = "of " + r.Resource.PercentageBase
		} else if r.RateMissing {
			rate = "Rate missing"
		}

		m.AddRows(
			row.New(5).Add(
				col.New(4).Add(text.New(r.Resource.Name, cellStyle)),
				col.New(2).Add(text.New(resType, cellStyle)),
				col.New(1).Add(text.New(r.Resource.Unit, cellStyle)),
				col.New(1).Add(text.New(qty, cellRightStyle)),
				col.New(2).Add(text.New(rate, cellRightStyle)),
				col.New(2).Add(text.New(FormatNPR(r.GrossAmount), cellRightStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addAnalysisTotals adds the subtotal block and the final unit rate.
func addAnalysisTotals(m core.Maroto, data AnalysisExportData) {
	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	addTotal := func(label string, amount float64) {
		m.AddRows(
			row.New(5).Add(
				col.New(8).Add(text.New(label, labelStyle)),
				col.New(4).Add(text.New(FormatNPR(amount), valueStyle)),
			),
		)
	}

	res := data.Resolution
	addTotal("Labour:", res.LabourTotal)
	addTotal("Material:", res.MaterialTotal)
	addTotal("Equipment:", res.EquipmentTotal)
	if res.PercentageTotal != 0 {
		addTotal("Percentage additions:", res.PercentageTotal)
	}
	addTotal(fmt.Sprintf("Total for %s %s:", FormatQty(data.Norm.Basis()), data.Norm.Unit), res.RawTotal)

	if data.Mode == ModeContractor {
		addTotal("Contractor Profit & Overhead (15%):", data.UnitRate-res.RawTotal/data.Norm.Basis())
	}

	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Unit rate per %s:", data.Norm.Unit), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
			col.New(4).Add(text.New(FormatNPR(data.UnitRate), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
}
