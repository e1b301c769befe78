package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skillsage/backend/pkg/api"
)

// genericErrorMessage is what clients see for unhandled storage faults.
// Raw error detail goes to the server log only.
const genericErrorMessage = "Something went wrong"

// sendJSON writes data as a JSON response with the given status code.
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error body with a message field.
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.MessageResponse{Message: message}, statusCode)
}
