package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// OverridePayload upserts a project's override for one (norm, resource
// name) pair. Null fields fall back to the global value; both null clears
// the override entirely.
type OverridePayload struct {
	NormID       string   `json:"norm"`
	ResourceName string   `json:"resource_name"`
	Rate         *float64 `json:"override_rate"`
	Quantity     *float64 `json:"override_quantity"`
}

// Validate checks an override payload. Negative values are rejected; zero
// is a legitimate override (free resource, omitted resource).
func (p OverridePayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.NormID, validation.Required),
		validation.Field(&p.ResourceName, validation.Required),
	)
	if err != nil {
		return err
	}
	if p.Rate != nil && *p.Rate < 0 {
		return validation.Errors{"override_rate": validation.NewError("validation_min", "must be no less than 0")}
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return validation.Errors{"override_quantity": validation.NewError("validation_min", "must be no less than 0")}
	}
	return nil
}

func overrideResponse(rec *core.Record) map[string]any {
	resp := map[string]any{
		"id":                rec.Id,
		"norm":              rec.GetString("norm"),
		"resource_name":     rec.GetString("resource_name"),
		"override_rate":     nil,
		"override_quantity": nil,
	}
	if v := parseNullableFloat(rec.GetString("override_rate")); v != nil {
		resp["override_rate"] = *v
	}
	if v := parseNullableFloat(rec.GetString("override_quantity")); v != nil {
		resp["override_quantity"] = *v
	}
	return resp
}

// findOverrideRecord locates the stored override for a (project, norm,
// resource name) triple, matching the name case-insensitively.
func findOverrideRecord(app *pocketbase.PocketBase, projectID, normID, resourceName string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"rate_overrides",
		"project = {:projectId} && norm = {:normId}",
		"", 0, 0,
		map[string]any{"projectId": projectID, "normId": normID},
	)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if services.NameKey(rec.GetString("resource_name")) == services.NameKey(resourceName) {
			return rec, nil
		}
	}
	return nil, nil
}

func HandleOverrideList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"rate_overrides",
			"project = {:projectId}",
			"", 0, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			log.Printf("overrides: could not query overrides for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, overrideResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"overrides": items})
	}
}

func HandleOverrideUpsert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var payload OverridePayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.ResourceName = strings.TrimSpace(payload.ResourceName)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		if _, err := app.FindRecordById("norms", payload.NormID); err != nil {
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		existing, err := findOverrideRecord(app, project.Id, payload.NormID, payload.ResourceName)
		if err != nil {
			log.Printf("overrides: could not query overrides for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Both fields null clears the override.
		if payload.Rate == nil && payload.Quantity == nil {
			if existing != nil {
				if err := app.Delete(existing); err != nil {
					log.Printf("overrides: failed to clear override %s: %v", existing.Id, err)
					return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "cleared"})
		}

		record := existing
		if record == nil {
			overridesCol, err := app.FindCollectionByNameOrId("rate_overrides")
			if err != nil {
				log.Printf("overrides: could not find collection: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(overridesCol)
			record.Set("project", project.Id)
			record.Set("norm", payload.NormID)
			record.Set("resource_name", payload.ResourceName)
		}

		record.Set("override_rate", formatNullableFloat(payload.Rate))
		record.Set("override_quantity", formatNullableFloat(payload.Quantity))

		if err := app.Save(record); err != nil {
			log.Printf("overrides: failed to save override for %q: %v", payload.ResourceName, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, overrideResponse(record))
	}
}

// formatNullableFloat renders an optional float for text storage, where
// empty string means "not set".
func formatNullableFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
