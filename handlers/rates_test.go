package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niteshrisal-coder/Norms-Master/testhelpers"
)

func TestHandleRateCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRateCreate(app)

	req := newJSONRequest(t, http.MethodPost, "/rates", map[string]any{
		"resource_type": "Material",
		"name":          "Cement",
		"unit":          "Bag",
		"rate":          790,
		"apply_vat":     true,
	})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["name"] != "Cement" || body["apply_vat"] != true {
		t.Errorf("unexpected response: %v", body)
	}
}

func TestHandleRateCreate_DuplicateNameConflict(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestRate(t, app, "Material", "Cement", 790, true)
	handler := HandleRateCreate(app)

	// Names join case-insensitively, so "CEMENT" collides with "Cement".
	req := newJSONRequest(t, http.MethodPost, "/rates", map[string]any{
		"resource_type": "Material",
		"name":          "CEMENT",
		"rate":          800,
	})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleRateCreate_NegativeRateRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRateCreate(app)

	req := newJSONRequest(t, http.MethodPost, "/rates", map[string]any{
		"resource_type": "Labour",
		"name":          "Mason",
		"rate":          -100,
	})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleRateList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestRate(t, app, "Labour", "Mason", 1050, false)
	testhelpers.CreateTestRate(t, app, "Material", "Cement", 790, true)
	handler := HandleRateList(app)

	req := httptest.NewRequest(http.MethodGet, "/rates", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := decodeJSON(t, rec)
	rates, _ := body["rates"].([]any)
	if len(rates) != 2 {
		t.Errorf("expected 2 rates, got %d", len(rates))
	}
}

func TestHandleRateUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rate := testhelpers.CreateTestRate(t, app, "Material", "Cement", 790, true)
	handler := HandleRateUpdate(app)

	req := newJSONRequest(t, http.MethodPatch, "/rates/"+rate.Id, map[string]any{
		"rate": 815,
	})
	req.SetPathValue("id", rate.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, _ := app.FindRecordById("rates", rate.Id)
	if updated.GetFloat("rate") != 815 {
		t.Errorf("rate = %v, want 815", updated.GetFloat("rate"))
	}
	if !updated.GetBool("apply_vat") {
		t.Error("apply_vat flag should be preserved on partial update")
	}
}

func TestHandleRateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rate := testhelpers.CreateTestRate(t, app, "Labour", "Mason", 1050, false)
	handler := HandleRateDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/rates/"+rate.Id, nil)
	req.SetPathValue("id", rate.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("rates", rate.Id); err == nil {
		t.Error("expected rate to be deleted")
	}
}
