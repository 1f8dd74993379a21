package routes

import (
	"errors"
	"net/http"

	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/util"
)

// buildAppHTTPErr maps the core services' failure kinds onto HTTP statuses.
// Anything unrecognized is treated as an unexpected storage failure.
func buildAppHTTPErr(err error) *util.HTTPError {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: validationErr.Message}
	}
	var notFoundErr *app.NotFoundError
	if errors.As(err, &notFoundErr) {
		return &util.HTTPError{Status: http.StatusNotFound, Message: notFoundErr.Error()}
	}
	var permissionErr *app.PermissionError
	if errors.As(err, &permissionErr) {
		return &util.HTTPError{Status: http.StatusForbidden, Message: permissionErr.Message}
	}
	var conflictErr *app.ConflictError
	if errors.As(err, &conflictErr) {
		return &util.HTTPError{Status: http.StatusConflict, Message: conflictErr.Message}
	}
	return util.BuildDbHTTPErr(err)
}
