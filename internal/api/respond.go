package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// requiredFieldsMessage prefixes every validation error shown to users.
const requiredFieldsMessage = "Por favor, complete todos los campos obligatorios"

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("warning: failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// sendStoreError maps store errors onto status codes.
func sendStoreError(w http.ResponseWriter, err error, action string) {
	var validation *store.ValidationError
	switch {
	case errors.As(err, &validation):
		sendJSON(w, http.StatusBadRequest, errorResponse{
			Error:  fmt.Sprintf("%s: %s.", requiredFieldsMessage, strings.Join(validation.Fields, ", ")),
			Fields: validation.Fields,
		})
	case errors.Is(err, store.ErrNotFound):
		sendJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.Printf("warning: failed to %s: %v", action, err)
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to " + action})
	}
}
