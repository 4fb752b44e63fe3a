package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-localize/internal/auth"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/importer"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  validation.Errors `json:"issues,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, auth.ErrTokenRequired) || errors.Is(err, auth.ErrTokenInvalid) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthenticated",
			Message: err.Error(),
		}
	}

	if errors.Is(err, catalog.ErrUnknownLanguage) {
		return http.StatusBadRequest, errorResponse{
			Error:   "invalid_language",
			Message: err.Error(),
		}
	}

	if errors.Is(err, importer.ErrFormatUnsupported) {
		return http.StatusBadRequest, errorResponse{
			Error:   "unsupported_format",
			Message: err.Error(),
		}
	}

	var issues validation.Errors
	if errors.As(err, &issues) {
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  issues,
		}
	}

	if errors.Is(err, catalog.ErrProjectRequired) ||
		errors.Is(err, catalog.ErrKeyRequired) ||
		errors.Is(err, catalog.ErrNoLanguages) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		}
	}

	// Store failures surface the raw error text with a 500, no retry and no
	// transient/permanent distinction at this layer.
	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
