package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niteshrisal-coder/Norms-Master/testhelpers"
)

func TestHandleOverrideUpsert_Creates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	handler := HandleOverrideUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/overrides", map[string]any{
		"norm":          norm.Id,
		"resource_name": "Cement",
		"override_rate": 850,
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
	if body["override_rate"] != 850.0 {
		t.Errorf("override_rate = %v, want 850", body["override_rate"])
	}
	if body["override_quantity"] != nil {
		t.Errorf("override_quantity = %v, want null", body["override_quantity"])
	}
}

func TestHandleOverrideUpsert_UpdatesExistingCaseInsensitive(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	testhelpers.CreateTestOverride(t, app, proj.Id, norm.Id, "Cement", testhelpers.FloatPtr(850), nil)
	handler := HandleOverrideUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/overrides", map[string]any{
		"norm":              norm.Id,
		"resource_name":     "CEMENT",
		"override_rate":     900,
		"override_quantity": 7,
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Still exactly one override row for the pair.
	records, _ := app.FindRecordsByFilter(
		"rate_overrides",
		"project = {:projectId}",
		"", 0, 0,
		map[string]any{"projectId": proj.Id},
	)
	if len(records) != 1 {
		t.Fatalf("expected 1 override record, got %d", len(records))
	}
	if records[0].GetString("override_rate") != "900" {
		t.Errorf("override_rate = %q, want 900", records[0].GetString("override_rate"))
	}
	if records[0].GetString("override_quantity") != "7" {
		t.Errorf("override_quantity = %q, want 7", records[0].GetString("override_quantity"))
	}
}

func TestHandleOverrideUpsert_BothNullClears(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	existing := testhelpers.CreateTestOverride(t, app, proj.Id, norm.Id, "Cement", testhelpers.FloatPtr(850), nil)
	handler := HandleOverrideUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/overrides", map[string]any{
		"norm":          norm.Id,
		"resource_name": "Cement",
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := app.FindRecordById("rate_overrides", existing.Id); err == nil {
		t.Error("expected the override row to be cleared")
	}
}

func TestHandleOverrideUpsert_ZeroIsAnOverride(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	handler := HandleOverrideUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/overrides", map[string]any{
		"norm":              norm.Id,
		"resource_name":     "Sand",
		"override_quantity": 0,
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	records, _ := app.FindRecordsByFilter(
		"rate_overrides",
		"project = {:projectId}",
		"", 0, 0,
		map[string]any{"projectId": proj.Id},
	)
	if len(records) != 1 {
		t.Fatalf("expected the zero-quantity override to be stored, got %d records", len(records))
	}
	if records[0].GetString("override_quantity") != "0" {
		t.Errorf("override_quantity = %q, want 0", records[0].GetString("override_quantity"))
	}
}

func TestHandleOverrideUpsert_NegativeRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	handler := HandleOverrideUpsert(app)

	req := newJSONRequest(t, http.MethodPut, "/projects/"+proj.Id+"/overrides", map[string]any{
		"norm":          norm.Id,
		"resource_name": "Cement",
		"override_rate": -5,
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

func TestHandleOverrideList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project", "USERS")
	other := testhelpers.CreateTestProject(t, app, "Other Project", "USERS")
	norm := testhelpers.CreateTestNorm(t, app, "Concrete", "Cum", 1)
	testhelpers.CreateTestOverride(t, app, proj.Id, norm.Id, "Cement", testhelpers.FloatPtr(850), nil)
	testhelpers.CreateTestOverride(t, app, other.Id, norm.Id, "Cement", testhelpers.FloatPtr(999), nil)
	handler := HandleOverrideList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/overrides", nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := decodeJSON(t, rec)
	overrides, _ := body["overrides"].([]any)
	if len(overrides) != 1 {
		t.Errorf("expected 1 override scoped to the project, got %d", len(overrides))
	}
}
