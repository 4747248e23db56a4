package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// validationError maps a failed payload validation to a 400 response. The
// ozzo error message already names the offending fields.
func validationError(e *core.RequestEvent, err error) error {
	return apiError(e, http.StatusBadRequest, err.Error())
}
