package handlers

import (
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/collections"
	"github.com/niteshrisal-coder/Norms-Master/services"
)

// transportNumberFields are the distance and coefficient fields accepted by
// the save endpoint, in storage order.
var transportNumberFields = []string{
	"metalled_km", "gravelled_km", "porter_km",
	"porter_easy", "porter_difficult", "porter_vdifficult", "porter_high_volume",
	"truck_metalled_easy", "truck_metalled_difficult", "truck_metalled_vdifficult", "truck_metalled_high_volume",
	"truck_gravelled_easy", "truck_gravelled_difficult", "truck_gravelled_vdifficult", "truck_gravelled_high_volume",
	"tractor_metalled", "tractor_gravelled",
}

// TransportPayload carries a full transport settings save. Every field is
// submitted on each save, mirroring the settings form.
type TransportPayload struct {
	Mode   string             `json:"transport_mode"`
	Values map[string]float64 `json:"values"`
}

// Validate checks a transport payload.
func (p TransportPayload) Validate() error {
	if err := validation.Validate(p.Mode, validation.Required,
		validation.In(string(services.TransportTruck), string(services.TransportTractor))); err != nil {
		return validation.Errors{"transport_mode": validation.NewError("validation_in", "must be TRUCK or TRACTOR")}
	}
	for field, value := range p.Values {
		if value < 0 {
			return validation.Errors{field: validation.NewError("validation_min", "must be no less than 0")}
		}
	}
	return nil
}

func transportResponse(rec *core.Record) map[string]any {
	resp := map[string]any{
		"id":             rec.Id,
		"transport_mode": rec.GetString("transport_mode"),
	}
	for _, field := range transportNumberFields {
		resp[field] = rec.GetFloat(field)
	}
	return resp
}

func HandleTransportView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		record, err := collections.EnsureTransportSettings(app, project.Id)
		if err != nil {
			log.Printf("transport: could not load settings for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, transportResponse(record))
	}
}

func HandleTransportSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var payload TransportPayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		record, err := collections.EnsureTransportSettings(app, project.Id)
		if err != nil {
			log.Printf("transport: could not load settings for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record.Set("transport_mode", payload.Mode)
		for _, field := range transportNumberFields {
			if value, ok := payload.Values[field]; ok {
				record.Set(field, value)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("transport: failed to save settings for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("transport: saved settings for project %s\n", project.Id)
		return e.JSON(http.StatusOK, transportResponse(record))
	}
}

func materialResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"material_name": rec.GetString("material_name"),
		"unit_weight":   rec.GetFloat("unit_weight_kg"),
		"load_category": rec.GetString("load_category"),
	}
}

func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"material_transport",
			"project = {:projectId}",
			"material_name", 0, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			log.Printf("materials: could not query materials for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, materialResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"materials": items})
	}
}

func HandleMaterialUpsert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var payload services.MaterialTransportPayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.MaterialName = strings.TrimSpace(payload.MaterialName)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		// One haul profile per material name within a project.
		var record *core.Record
		existing, err := app.FindRecordsByFilter(
			"material_transport",
			"project = {:projectId}",
			"", 0, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			log.Printf("materials: could not query materials for %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		for _, rec := range existing {
			if services.NameKey(rec.GetString("material_name")) == services.NameKey(payload.MaterialName) {
				record = rec
				break
			}
		}

		if record == nil {
			materialsCol, err := app.FindCollectionByNameOrId("material_transport")
			if err != nil {
				log.Printf("materials: could not find collection: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(materialsCol)
			record.Set("project", project.Id)
		}

		record.Set("material_name", payload.MaterialName)
		record.Set("unit_weight_kg", payload.UnitWeightKG)
		record.Set("load_category", payload.LoadCategory)

		if err := app.Save(record); err != nil {
			log.Printf("materials: failed to save material %q: %v", payload.MaterialName, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, materialResponse(record))
	}
}

func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		materialID := e.Request.PathValue("materialId")
		record, err := app.FindRecordById("material_transport", materialID)
		if err != nil || record.GetString("project") != project.Id {
			log.Printf("materials: material %s of project %s not found: %v", materialID, project.Id, err)
			return apiError(e, http.StatusNotFound, "Material not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("materials: failed to delete material %s: %v", materialID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
