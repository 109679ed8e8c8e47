// Package handlers contains the HTTP handlers for the user-data endpoints.
// Each handler validates its request shape once at the boundary, issues one
// repository call, and writes the flat JSON response shape the API's callers
// already depend on.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError writes the {"error": message} shape used across every
// endpoint. Store failures never leak their underlying error here.
func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
