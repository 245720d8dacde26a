// Package httputil centralizes JSON encoding and error mapping for HTTP
// handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"swiftscreen/pkg/platform/sentinel"
)

type apiError struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// invalidError marks caller mistakes that map to 400.
type invalidError struct {
	msg string
}

func (e *invalidError) Error() string { return e.msg }

// Invalid wraps a validation message into a 400-mapped error.
func Invalid(msg string) error {
	return &invalidError{msg: msg}
}

// WriteError maps domain errors to HTTP statuses. Unrecognized errors become
// an opaque 500; their message never reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	var invalid *invalidError
	switch {
	case errors.As(err, &invalid):
		WriteJSON(w, http.StatusBadRequest, apiError{Error: "bad_request", Description: invalid.msg})
	case errors.Is(err, sentinel.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, apiError{Error: "not_found", Description: err.Error()})
	case errors.Is(err, sentinel.ErrConflict):
		WriteJSON(w, http.StatusConflict, apiError{Error: "conflict", Description: err.Error()})
	case errors.Is(err, sentinel.ErrInvalidState):
		WriteJSON(w, http.StatusUnprocessableEntity, apiError{Error: "invalid_state", Description: err.Error()})
	case errors.Is(err, sentinel.ErrUnavailable), errors.Is(err, sentinel.ErrListUnavailable):
		WriteJSON(w, http.StatusServiceUnavailable, apiError{Error: "unavailable", Description: err.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, apiError{Error: "internal_error"})
	}
}

// Decode reads the request body into T. Unknown fields are rejected so typos
// surface as 400s instead of silently dropped fields.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, Invalid("malformed request body: " + err.Error())
	}
	return v, nil
}
