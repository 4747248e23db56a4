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

// ProjectPayload carries the input for creating or updating a project.
type ProjectPayload struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Mode     string `json:"mode"`
	Status   string `json:"status"`
}

// Validate checks a project payload.
func (p ProjectPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Mode, validation.Required,
			validation.In(string(services.ModeContractor), string(services.ModeUsers))),
		validation.Field(&p.Status, validation.In("active", "completed", "on_hold")),
	)
}

func projectResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":       rec.Id,
		"name":     rec.GetString("name"),
		"district": rec.GetString("district"),
		"mode":     rec.GetString("mode"),
		"status":   rec.GetString("status"),
	}
}

func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find projects collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("projects: could not query projects: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, projectResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"projects": items})
	}
}

func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload ProjectPayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Status == "" {
			payload.Status = "active"
		}
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find projects collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		record.Set("name", payload.Name)
		record.Set("district", payload.District)
		record.Set("mode", payload.Mode)
		record.Set("status", payload.Status)

		if err := app.Save(record); err != nil {
			log.Printf("projects: failed to save project %q: %v", payload.Name, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Every project prices transport from day one.
		if _, err := collections.EnsureTransportSettings(app, record.Id); err != nil {
			log.Printf("projects: failed to create transport defaults for %s: %v", record.Id, err)
		}

		log.Printf("projects: created project %q (%s)\n", payload.Name, record.Id)
		return e.JSON(http.StatusCreated, projectResponse(record))
	}
}

func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}
		return e.JSON(http.StatusOK, projectResponse(record))
	}
}

func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		payload := ProjectPayload{
			Name:     record.GetString("name"),
			District: record.GetString("district"),
			Mode:     record.GetString("mode"),
			Status:   record.GetString("status"),
		}
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		record.Set("name", payload.Name)
		record.Set("district", payload.District)
		record.Set("mode", payload.Mode)
		record.Set("status", payload.Status)

		if err := app.Save(record); err != nil {
			log.Printf("projects: failed to update project %s: %v", record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, projectResponse(record))
	}
}

func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := resolveProject(app, e)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("projects: failed to delete project %s: %v", record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("projects: deleted project %s\n", record.Id)
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
