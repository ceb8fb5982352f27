package controller

import (
	"encoding/json"
	"net/http"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
)

const internalErrorMessage = "Internal server error"

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.S().Errorf("❌ writeJSON: Failed to encode response: %v", err)
	}
}

// writeError writes a {"error": message} body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// WriteInternalError writes a 500 body. The error text is only exposed when
// exposeDetails is set.
func WriteInternalError(w http.ResponseWriter, err error, exposeDetails bool) {
	message := "Something went wrong"
	if exposeDetails && err != nil {
		message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Error:   internalErrorMessage,
		Message: message,
	})
}
