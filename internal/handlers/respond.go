// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bigbrain-live/bigbrain/internal/engine"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps the two recoverable error kinds onto the wire: input
// errors are 400s, access errors 403s. Anything else is reported as a
// generic system error without leaking details.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var inputErr *engine.InputError
	var accessErr *engine.AccessError
	switch {
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": inputErr.Error()})
	case errors.As(err, &accessErr):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": accessErr.Error()})
	default:
		s.log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "a system error occurred"})
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return engine.NewInputError("invalid request payload")
	}
	return nil
}
