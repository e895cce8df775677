// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the folio API.
// Handlers are grouped by concern (auth, catalog, portfolio, contact,
// uploads) and receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"folio/internal/catalog"
	"folio/internal/contact"
	"folio/internal/storage"
	"folio/internal/store"
)

// maxJSONBody caps request bodies for JSON endpoints.
const maxJSONBody = 1 << 20

// errNotFound is returned by handlers when a store lookup comes back empty.
var errNotFound = errors.New("not found")

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldErrors is a validation failure covering one or more fields.
type fieldErrors []FieldError

func (fe fieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", fe[0].Field, fe[0].Message)
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// writeJSON sends data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into dst. Unknown fields are ignored
// so clients can send back whole records they previously fetched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return storage.ErrTooLarge
		case errors.Is(err, io.EOF):
			return fieldErrors{{Field: "body", Message: "request body is required"}}
		default:
			return fieldErrors{{Field: "body", Message: "malformed JSON: " + err.Error()}}
		}
	}
	return nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fieldErrors{{Field: "id", Message: "must be a positive integer"}}
	}
	return id, nil
}

// respondError maps a domain error onto an HTTP status. Unexpected errors
// are logged with action and answered with a generic 500.
func respondError(w http.ResponseWriter, err error, action string) {
	var fe fieldErrors
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Fields: fe})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Validation failed",
			Fields: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.Is(err, errNotFound), errors.Is(err, catalog.ErrNotFound), errors.Is(err, contact.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, catalog.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "Unknown category")
	case errors.Is(err, catalog.ErrDuplicateName), errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "Name already exists")
	case errors.Is(err, contact.ErrFormDisabled):
		writeError(w, http.StatusForbidden, "Contact form is disabled")
	case errors.Is(err, storage.ErrOutsideUploads):
		writeError(w, http.StatusBadRequest, "Invalid path: must be inside uploads directory")
	case errors.Is(err, storage.ErrTypeNotAllowed):
		writeError(w, http.StatusBadRequest, "File type not allowed")
	case errors.Is(err, storage.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "Request too large")
	default:
		slog.Error(action+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
