package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// buildAnalysis resolves one norm under a project's mode and overrides.
func buildAnalysis(app *pocketbase.PocketBase, project *core.Record, normID string) (services.Norm, services.Resolution, float64, error) {
	norm, err := loadNorm(app, normID)
	if err != nil {
		return services.Norm{}, services.Resolution{}, 0, err
	}

	rateList, err := loadRates(app)
	if err != nil {
		return services.Norm{}, services.Resolution{}, 0, err
	}
	overrideList, err := loadOverrides(app, project.Id)
	if err != nil {
		return services.Norm{}, services.Resolution{}, 0, err
	}

	mode := services.ProjectMode(project.GetString("mode"))
	rates := services.BuildRateIndex(rateList)
	overrides := services.BuildOverrideIndex(overrideList)

	resolution := services.ResolveResources(norm, mode, rates, overrides)
	unitRate := services.UnitRate(norm, mode, rates, overrides)
	return norm, resolution, unitRate, nil
}

func resolvedRowResponse(row services.ResolvedResource) map[string]any {
	resp := map[string]any{
		"name":          row.Resource.Name,
		"type":          string(row.Resource.Type),
		"unit":          row.Resource.Unit,
		"quantity":      row.Quantity,
		"rate":          row.Rate,
		"amount":        row.Amount,
		"vat_amount":    row.VATAmount,
		"gross_amount":  row.GrossAmount,
		"apply_vat":     row.ApplyVAT,
		"rate_missing":  row.RateMissing,
		"is_percentage": row.Resource.IsPercentage,
	}
	if row.Resource.IsPercentage {
		resp["percentage_base"] = row.Resource.PercentageBase
	}
	return resp
}

func HandleNormAnalysis(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		normID := e.Request.PathValue("normId")
		norm, resolution, unitRate, err := buildAnalysis(app, project, normID)
		if err != nil {
			log.Printf("analysis: could not analyze norm %s: %v", normID, err)
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		rows := make([]map[string]any, 0, len(resolution.Rows))
		for _, row := range resolution.Rows {
			rows = append(rows, resolvedRowResponse(row))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"norm": map[string]any{
				"id":             norm.ID,
				"type":           string(norm.Type),
				"code":           norm.Code,
				"description":    norm.Description,
				"unit":           norm.Unit,
				"basis_quantity": norm.BasisQuantity,
				"ref_ss":         norm.RefSS,
			},
			"mode":                string(project.GetString("mode")),
			"rows":                rows,
			"labour_total":        resolution.LabourTotal,
			"material_total":      resolution.MaterialTotal,
			"equipment_total":     resolution.EquipmentTotal,
			"percentage_total":    resolution.PercentageTotal,
			"raw_total":           resolution.RawTotal,
			"unit_rate":           unitRate,
			"unit_rate_formatted": services.FormatNPR(unitRate),
		})
	}
}
