package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const projectKey contextKey = "project"

// ProjectMiddleware resolves the {projectId} path value into a project
// record and caches it in the request context so project-scoped handlers
// do not each hit the database for it. Requests without a projectId pass
// through untouched.
func ProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.Next()
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("middleware: project %s not found: %v", projectID, err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		ctx := context.WithValue(e.Request.Context(), projectKey, record)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// resolveProject returns the project record for the current request. It
// prefers the middleware-cached record and falls back to loading by the
// {projectId} path value so handlers also work when invoked directly.
func resolveProject(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	if record, ok := e.Request.Context().Value(projectKey).(*core.Record); ok {
		return record, nil
	}
	return app.FindRecordById("projects", e.Request.PathValue("projectId"))
}
