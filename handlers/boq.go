package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// BOQItemPayload adds a norm to a project's bill of quantities.
type BOQItemPayload struct {
	NormID   string  `json:"norm"`
	Quantity float64 `json:"quantity"`
}

// Validate checks a BOQ item payload.
func (p BOQItemPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.NormID, validation.Required),
		validation.Field(&p.Quantity, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

func boqItemResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":         rec.Id,
		"norm":       rec.GetString("norm"),
		"quantity":   rec.GetFloat("quantity"),
		"sort_order": rec.GetFloat("sort_order"),
	}
}

func HandleBOQList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"boq_items",
			"project = {:projectId}",
			"sort_order", 0, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			log.Printf("boq: could not query items for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, boqItemResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleBOQAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var payload BOQItemPayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		if _, err := app.FindRecordById("norms", payload.NormID); err != nil {
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		itemsCol, err := app.FindCollectionByNameOrId("boq_items")
		if err != nil {
			log.Printf("boq: could not find boq_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		existing, err := app.FindRecordsByFilter(
			"boq_items",
			"project = {:projectId}",
			"", 0, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			existing = nil
		}

		record := core.NewRecord(itemsCol)
		record.Set("project", project.Id)
		record.Set("norm", payload.NormID)
		record.Set("quantity", payload.Quantity)
		record.Set("sort_order", len(existing)+1)

		if err := app.Save(record); err != nil {
			log.Printf("boq: failed to save item for norm %s: %v", payload.NormID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusCreated, boqItemResponse(record))
	}
}

func HandleBOQPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil || record.GetString("project") != project.Id {
			log.Printf("boq: item %s of project %s not found: %v", itemID, project.Id, err)
			return apiError(e, http.StatusNotFound, "BOQ item not found")
		}

		var payload struct {
			Quantity float64 `json:"quantity"`
		}
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if payload.Quantity <= 0 {
			return apiError(e, http.StatusBadRequest, "Quantity must be greater than zero")
		}

		record.Set("quantity", payload.Quantity)
		if err := app.Save(record); err != nil {
			log.Printf("boq: failed to update item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, boqItemResponse(record))
	}
}

func HandleBOQDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil || record.GetString("project") != project.Id {
			log.Printf("boq: item %s of project %s not found: %v", itemID, project.Id, err)
			return apiError(e, http.StatusNotFound, "BOQ item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("boq: failed to delete item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func breakdownRowResponse(row services.BreakdownRow) map[string]any {
	resp := map[string]any{
		"name":           row.Name,
		"type":           string(row.Type),
		"unit":           row.Unit,
		"quantity":       row.Quantity,
		"rate":           row.Rate,
		"apply_vat":      row.ApplyVAT,
		"amount":         row.Amount,
		"vat_amount":     row.VATAmount,
		"transport_cost": row.TransportCost,
		"total_amount":   row.TotalAmount,
		"rate_missing":   row.RateMissing,
		"is_percentage":  row.IsPercentage,
	}
	if row.IsPercentage {
		resp["percentage_base"] = row.PercentageBase
	}
	return resp
}

func HandleBOQSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		snap, err := loadSnapshot(app, project)
		if err != nil {
			log.Printf("boq: could not load snapshot for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		summary := services.AggregateBOQ(snap)
		rows := make([]map[string]any, 0, len(summary.Rows))
		for _, row := range summary.Rows {
			rows = append(rows, breakdownRowResponse(row))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"mode":            string(snap.Mode),
			"rows":            rows,
			"total":           summary.TotalBOQAmount,
			"total_formatted": services.FormatNPR(summary.TotalBOQAmount),
		})
	}
}
