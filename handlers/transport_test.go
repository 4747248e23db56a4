package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niteshrisal-coder/Norms-Master/testhelpers"
)

func TestHandleTransportView_ProvisionsDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Transport Project", "USERS")
	handler := HandleTransportView(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/transport", nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["transport_mode"] != "TRUCK" {
		t.Errorf("transport_mode = %v, want TRUCK default", body["transport_mode"])
	}
	if body["metalled_km"] != 0.0 {
		t.Errorf("metalled_km = %v, want 0 default", body["metalled_km"])
	}
	if v, _ := body["porter_easy"].(float64); v <= 0 {
		t.Errorf("porter_easy = %v, want a non-zero default coefficient", body["porter_easy"])
	}
}

func TestHandleTransportSave(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Transport Project", "USERS")
	handler := HandleTransportSave(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/transport", map[string]any{
		"transport_mode": "TRACTOR",
		"values": map[string]float64{
			"metalled_km":      12,
			"gravelled_km":     4,
			"porter_km":        2,
			"tractor_metalled": 0.015,
		},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["transport_mode"] != "TRACTOR" {
		t.Errorf("transport_mode = %v, want TRACTOR", body["transport_mode"])
	}
	if body["metalled_km"] != 12.0 {
		t.Errorf("metalled_km = %v, want 12", body["metalled_km"])
	}
	// Coefficients not in the payload keep their defaults.
	if v, _ := body["porter_easy"].(float64); v <= 0 {
		t.Errorf("porter_easy = %v, want preserved default", body["porter_easy"])
	}
}

func TestHandleTransportSave_InvalidMode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Transport Project", "USERS")
	handler := HandleTransportSave(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/transport", map[string]any{
		"transport_mode": "HELICOPTER",
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMaterialUpsert_CreateAndUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Material Project", "USERS")
	handler := HandleMaterialUpsert(app)

	// Create
	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/materials", map[string]any{
		"material_name": "Cement",
		"unit_weight":   50,
		"load_category": "EASY",
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Update through a different casing of the same name
	req = newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/materials", map[string]any{
		"material_name": "CEMENT",
		"unit_weight":   25,
		"load_category": "DIFFICULT",
	})
	req.SetPathValue("projectId", proj.Id)
	rec = httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, _ := app.FindRecordsByFilter(
		"material_transport",
		"project = {:projectId}",
		"", 0, 0,
		map[string]any{"projectId": proj.Id},
	)
	if len(records) != 1 {
		t.Fatalf("expected 1 material record after upsert, got %d", len(records))
	}
	if records[0].GetFloat("unit_weight_kg") != 25 {
		t.Errorf("unit_weight_kg = %v, want 25", records[0].GetFloat("unit_weight_kg"))
	}
	if records[0].GetString("load_category") != "DIFFICULT" {
		t.Errorf("load_category = %q, want DIFFICULT", records[0].GetString("load_category"))
	}
}

func TestHandleMaterialUpsert_InvalidCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Material Project", "USERS")
	handler := HandleMaterialUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/materials", map[string]any{
		"material_name": "Cement",
		"unit_weight":   50,
		"load_category": "IMPOSSIBLE",
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMaterialDelete_ScopedToProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Material Project", "USERS")
	other := testhelpers.CreateTestProject(t, app, "Other Project", "USERS")
	material := testhelpers.CreateTestMaterialTransport(t, app, other.Id, "Cement", 50, "EASY")
	handler := HandleMaterialDelete(app)

	// Deleting another project's material must 404.
	req := httptest.NewRequest(http.MethodDelete, "/projects/"+proj.Id+"/materials/"+material.Id, nil)
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("materialId", material.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("material_transport", material.Id); err != nil {
		t.Error("material should not have been deleted")
	}
}

func TestHandleMaterialList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Material Project", "USERS")
	testhelpers.CreateTestMaterialTransport(t, app, proj.Id, "Cement", 50, "EASY")
	testhelpers.CreateTestMaterialTransport(t, app, proj.Id, "Sand", 1600, "HIGH_VOLUME")
	handler := HandleMaterialList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/materials", nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := decodeJSON(t, rec)
	materials, _ := body["materials"].([]any)
	if len(materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(materials))
	}
}
