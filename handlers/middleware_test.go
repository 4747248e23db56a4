package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niteshrisal-coder/Norms-Master/testhelpers"
)

func TestProjectMiddleware_UnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	middleware := ProjectMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/missing/boq", nil)
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()

	if err := middleware(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestResolveProject_FallsBackToPathValue(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Direct Project", "USERS")

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id, nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	record, err := resolveProject(app, e)
	if err != nil {
		t.Fatalf("resolveProject() error: %v", err)
	}
	if record.Id != proj.Id {
		t.Errorf("resolved project %s, want %s", record.Id, proj.Id)
	}
}
