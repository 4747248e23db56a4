package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

func resourceResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":              rec.Id,
		"resource_type":   rec.GetString("resource_type"),
		"name":            rec.GetString("name"),
		"unit":            rec.GetString("unit"),
		"quantity":        rec.GetFloat("quantity"),
		"is_percentage":   rec.GetBool("is_percentage"),
		"percentage_base": rec.GetString("percentage_base"),
		"sort_order":      rec.GetFloat("sort_order"),
	}
}

func normResponse(rec *core.Record, resources []map[string]any) map[string]any {
	return map[string]any{
		"id":             rec.Id,
		"type":           rec.GetString("type"),
		"code":           rec.GetString("code"),
		"description":    rec.GetString("description"),
		"unit":           rec.GetString("unit"),
		"basis_quantity": rec.GetFloat("basis_quantity"),
		"ref_ss":         rec.GetString("ref_ss"),
		"resources":      resources,
	}
}

// fixedResourceNames returns the names of a norm's non-percentage
// resources, optionally excluding one record (the one being edited).
func fixedResourceNames(app *pocketbase.PocketBase, normID, excludeID string) ([]string, error) {
	records, err := app.FindRecordsByFilter(
		"norm_resources",
		"norm = {:normId} && is_percentage = false",
		"", 0, 0,
		map[string]any{"normId": normID},
	)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Id == excludeID {
			continue
		}
		names = append(names, rec.GetString("name"))
	}
	return names, nil
}

func HandleNormList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normsCol, err := app.FindCollectionByNameOrId("norms")
		if err != nil {
			log.Printf("norms: could not find norms collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		normRecords, err := app.FindAllRecords(normsCol)
		if err != nil {
			log.Printf("norms: could not query norms: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		resourceRecords, err := app.FindRecordsByFilter(
			"norm_resources", "id != ''", "sort_order", 0, 0, nil,
		)
		if err != nil {
			log.Printf("norms: could not query resources: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		byNorm := make(map[string][]map[string]any)
		for _, rec := range resourceRecords {
			normID := rec.GetString("norm")
			byNorm[normID] = append(byNorm[normID], resourceResponse(rec))
		}

		items := make([]map[string]any, 0, len(normRecords))
		for _, rec := range normRecords {
			resources := byNorm[rec.Id]
			if resources == nil {
				resources = []map[string]any{}
			}
			items = append(items, normResponse(rec, resources))
		}
		return e.JSON(http.StatusOK, map[string]any{"norms": items})
	}
}

func HandleNormCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.NormPayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Description = strings.TrimSpace(payload.Description)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		normsCol, err := app.FindCollectionByNameOrId("norms")
		if err != nil {
			log.Printf("norms: could not find norms collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(normsCol)
		record.Set("type", payload.Type)
		record.Set("code", payload.Code)
		record.Set("description", payload.Description)
		record.Set("unit", payload.Unit)
		record.Set("basis_quantity", payload.BasisQuantity)
		record.Set("ref_ss", payload.RefSS)

		if err := app.Save(record); err != nil {
			log.Printf("norms: failed to save norm %q: %v", payload.Description, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("norms: created norm %q (%s)\n", payload.Description, record.Id)
		return e.JSON(http.StatusCreated, normResponse(record, []map[string]any{}))
	}
}

func HandleNormUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normID := e.Request.PathValue("id")
		record, err := app.FindRecordById("norms", normID)
		if err != nil {
			log.Printf("norms: could not find norm %s: %v", normID, err)
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		payload := services.NormPayload{
			Type:          record.GetString("type"),
			Code:          record.GetString("code"),
			Description:   record.GetString("description"),
			Unit:          record.GetString("unit"),
			BasisQuantity: record.GetFloat("basis_quantity"),
			RefSS:         record.GetString("ref_ss"),
		}
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Description = strings.TrimSpace(payload.Description)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		record.Set("type", payload.Type)
		record.Set("code", payload.Code)
		record.Set("description", payload.Description)
		record.Set("unit", payload.Unit)
		record.Set("basis_quantity", payload.BasisQuantity)
		record.Set("ref_ss", payload.RefSS)

		if err := app.Save(record); err != nil {
			log.Printf("norms: failed to update norm %s: %v", normID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, normResponse(record, nil))
	}
}

func HandleNormDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normID := e.Request.PathValue("id")
		record, err := app.FindRecordById("norms", normID)
		if err != nil {
			log.Printf("norms: could not find norm %s: %v", normID, err)
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("norms: failed to delete norm %s: %v", normID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("norms: deleted norm %s\n", normID)
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func HandleResourceAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("norms", normID); err != nil {
			log.Printf("norm_resources: could not find norm %s: %v", normID, err)
			return apiError(e, http.StatusNotFound, "Norm not found")
		}

		var payload services.ResourcePayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)

		siblings, err := app.FindRecordsByFilter(
			"norm_resources",
			"norm = {:normId}",
			"", 0, 0,
			map[string]any{"normId": normID},
		)
		if err != nil {
			log.Printf("norm_resources: could not query resources of %s: %v", normID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		fixedNames := make([]string, 0, len(siblings))
		for _, rec := range siblings {
			if !rec.GetBool("is_percentage") {
				fixedNames = append(fixedNames, rec.GetString("name"))
			}
		}
		if err := services.ValidateResourcePayload(payload, fixedNames); err != nil {
			return validationError(e, err)
		}

		resourcesCol, err := app.FindCollectionByNameOrId("norm_resources")
		if err != nil {
			log.Printf("norm_resources: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(resourcesCol)
		record.Set("norm", normID)
		record.Set("resource_type", payload.Type)
		record.Set("name", payload.Name)
		record.Set("unit", payload.Unit)
		record.Set("quantity", payload.Quantity)
		record.Set("is_percentage", payload.IsPercentage)
		record.Set("percentage_base", payload.PercentageBase)
		record.Set("sort_order", len(siblings)+1)

		if err := app.Save(record); err != nil {
			log.Printf("norm_resources: failed to save resource %q: %v", payload.Name, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusCreated, resourceResponse(record))
	}
}

func HandleResourceUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normID := e.Request.PathValue("id")
		resourceID := e.Request.PathValue("resourceId")

		record, err := app.FindRecordById("norm_resources", resourceID)
		if err != nil || record.GetString("norm") != normID {
			log.Printf("norm_resources: resource %s of norm %s not found: %v", resourceID, normID, err)
			return apiError(e, http.StatusNotFound, "Resource not found")
		}

		payload := services.ResourcePayload{
			Type:           record.GetString("resource_type"),
			Name:           record.GetString("name"),
			Unit:           record.GetString("unit"),
			Quantity:       record.GetFloat("quantity"),
			IsPercentage:   record.GetBool("is_percentage"),
			PercentageBase: record.GetString("percentage_base"),
		}
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)

		fixedNames, err := fixedResourceNames(app, normID, resourceID)
		if err != nil {
			log.Printf("norm_resources: could not query resources of %s: %v", normID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if err := services.ValidateResourcePayload(payload, fixedNames); err != nil {
			return validationError(e, err)
		}

		record.Set("resource_type", payload.Type)
		record.Set("name", payload.Name)
		record.Set("unit", payload.Unit)
		record.Set("quantity", payload.Quantity)
		record.Set("is_percentage", payload.IsPercentage)
		record.Set("percentage_base", payload.PercentageBase)

		if err := app.Save(record); err != nil {
			log.Printf("norm_resources: failed to update resource %s: %v", resourceID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, resourceResponse(record))
	}
}

func HandleResourceDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		normID := e.Request.PathValue("id")
		resourceID := e.Request.PathValue("resourceId")

		record, err := app.FindRecordById("norm_resources", resourceID)
		if err != nil || record.GetString("norm") != normID {
			log.Printf("norm_resources: resource %s of norm %s not found: %v", resourceID, normID, err)
			return apiError(e, http.StatusNotFound, "Resource not found")
		}

		// Refuse to orphan percentage resources that price against this one.
		if !record.GetBool("is_percentage") {
			dependents, err := app.FindRecordsByFilter(
				"norm_resources",
				"norm = {:normId} && is_percentage = true",
				"", 0, 0,
				map[string]any{"normId": normID},
			)
			if err == nil {
				for _, dep := range dependents {
					if services.NameKey(dep.GetString("percentage_base")) == services.NameKey(record.GetString("name")) {
						return apiError(e, http.StatusConflict,
							"Cannot delete — a percentage resource prices against it")
					}
				}
			}
		}

		if err := app.Delete(record); err != nil {
			log.Printf("norm_resources: failed to delete resource %s: %v", resourceID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
