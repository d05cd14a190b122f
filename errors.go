package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"mockapi/internal/auth"
	"mockapi/internal/mockgen"
	"mockapi/internal/store"
)

// ErrInvalidInput is returned when the request payload is malformed.
var ErrInvalidInput = errors.New("invalid input")

// msgNotFound is the body text for an endpoint without a stored schema.
const msgNotFound = "API configuration not found"

// writeError maps err onto a status code and writes an ErrorResponse.
// Unclassified errors are logged and reported as 500 without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, msg = http.StatusNotFound, msgNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, mockgen.ErrInvalidSchema):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", `Bearer realm="mockapi", error="invalid_token"`)
		status, msg = http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
