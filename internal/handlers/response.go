package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
)

// writeJSON writes v as the JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

// writeError writes {ok:false, error} with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{OK: false, Error: msg})
}
