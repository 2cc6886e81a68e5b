package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tabshare/internal/service"
)

// errorBody is the uniform error payload: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// decodeJSON parses the request body into v, rejecting unknown syntax
// with a 400. Returns false after writing the error response.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses a numeric path segment. Returns false after writing a
// 400 for a malformed ID.
func pathID(w http.ResponseWriter, r *http.Request, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

// nonNil substitutes an empty slice for nil so list endpoints always
// return a JSON array, never null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// serviceError maps a failed service call onto a response: validation
// failures surface as 400 with the field-level message, anything else as
// a 500 with a generic message (the full detail is logged server-side by
// the service layer).
func serviceError(w http.ResponseWriter, err error, genericMessage string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, genericMessage)
}
