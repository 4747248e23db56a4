package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

func rateResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"resource_type": rec.GetString("resource_type"),
		"name":          rec.GetString("name"),
		"unit":          rec.GetString("unit"),
		"rate":          rec.GetFloat("rate"),
		"apply_vat":     rec.GetBool("apply_vat"),
	}
}

func HandleRateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ratesCol, err := app.FindCollectionByNameOrId("rates")
		if err != nil {
			log.Printf("rates: could not find rates collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		records, err := app.FindAllRecords(ratesCol)
		if err != nil {
			log.Printf("rates: could not query rates: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, rateResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"rates": items})
	}
}

func HandleRateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.RatePayload
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		// Names join case-insensitively, so a duplicate entry would be
		// unreachable by the engine.
		existing, err := app.FindRecordsByFilter(
			"rates", "name = {:name}", "", 0, 0,
			map[string]any{"name": payload.Name},
		)
		if err == nil {
			for _, rec := range existing {
				if services.NameKey(rec.GetString("name")) == services.NameKey(payload.Name) {
					return apiError(e, http.StatusConflict, "A rate with this name already exists")
				}
			}
		}

		ratesCol, err := app.FindCollectionByNameOrId("rates")
		if err != nil {
			log.Printf("rates: could not find rates collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(ratesCol)
		record.Set("resource_type", payload.Type)
		record.Set("name", payload.Name)
		record.Set("unit", payload.Unit)
		record.Set("rate", payload.Rate)
		record.Set("apply_vat", payload.ApplyVAT)

		if err := app.Save(record); err != nil {
			log.Printf("rates: failed to save rate %q: %v", payload.Name, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("rates: created rate %q (%s)\n", payload.Name, record.Id)
		return e.JSON(http.StatusCreated, rateResponse(record))
	}
}

func HandleRateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("id")
		record, err := app.FindRecordById("rates", rateID)
		if err != nil {
			log.Printf("rates: could not find rate %s: %v", rateID, err)
			return apiError(e, http.StatusNotFound, "Rate not found")
		}

		payload := services.RatePayload{
			Type:     record.GetString("resource_type"),
			Name:     record.GetString("name"),
			Unit:     record.GetString("unit"),
			Rate:     record.GetFloat("rate"),
			ApplyVAT: record.GetBool("apply_vat"),
		}
		if err := e.BindBody(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if err := payload.Validate(); err != nil {
			return validationError(e, err)
		}

		record.Set("resource_type", payload.Type)
		record.Set("name", payload.Name)
		record.Set("unit", payload.Unit)
		record.Set("rate", payload.Rate)
		record.Set("apply_vat", payload.ApplyVAT)

		if err := app.Save(record); err != nil {
			log.Printf("rates: failed to update rate %s: %v", rateID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, rateResponse(record))
	}
}

func HandleRateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("id")
		record, err := app.FindRecordById("rates", rateID)
		if err != nil {
			log.Printf("rates: could not find rate %s: %v", rateID, err)
			return apiError(e, http.StatusNotFound, "Rate not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("rates: failed to delete rate %s: %v", rateID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("rates: deleted rate %s\n", rateID)
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
