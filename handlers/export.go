package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// sanitizeFilename replaces characters that break Content-Disposition or
// file systems.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleBreakdownExportExcel generates and downloads the project cost
// breakdown as a workbook.
func HandleBreakdownExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		snap, err := loadSnapshot(app, project)
		if err != nil {
			log.Printf("export_excel: could not load snapshot for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		summary := services.AggregateBOQ(snap)
		data := services.BuildBreakdownExport(
			project.GetString("name"),
			project.GetString("district"),
			snap.Mode,
			time.Now(),
			summary,
		)

		xlsxBytes, err := services.GenerateBreakdownExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Breakdown_%s_%d.xlsx", sanitizeFilename(project.GetString("name")), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleAnalysisExportPDF generates and downloads the rate analysis of one
// norm under the project's pricing mode.
func HandleAnalysisExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		normID := e.Request.PathValue("normId")
		norm, resolution, unitRate, err := buildAnalysis(app, project, normID)
		if err != nil {
			log.Printf("export_pdf: could not analyze norm %s: %v", normID, err)
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		data := services.AnalysisExportData{
			ProjectName:   project.GetString("name"),
			Mode:          services.ProjectMode(project.GetString("mode")),
			GeneratedDate: time.Now().Format("2006-01-02"),
			Norm:          norm,
			Resolution:    resolution,
			UnitRate:      unitRate,
		}

		pdfBytes, err := services.GenerateAnalysisPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Analysis_%s_%d.pdf", sanitizeFilename(norm.Code), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
