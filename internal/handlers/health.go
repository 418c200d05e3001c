package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/middlewares"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
	"github.com/sbilibin2017/gw-account-auth/internal/repositories"
)

//go:generate mockgen -source=health.go -destination=health_mock.go -package=handlers

// StoreClock reports the current time of the account store.
type StoreClock interface {
	Now(ctx context.Context) (time.Time, error)
}

// NewHealthHandler returns a liveness handler that never touches the store.
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{
			OK:      true,
			Message: "Server is running",
		})
	}
}

// NewStoreTimeHandler returns a diagnostics handler reporting the store's current time.
// A missing store configuration and an unreachable store produce different errors.
// @Summary Store connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} models.StoreTimeResponse
// @Failure 500 {object} models.ErrorResponse "Store not configured or unreachable"
// @Router /test-db [get]
func NewStoreTimeHandler(clock StoreClock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := clock.Now(r.Context())
		if err != nil {
			if errors.Is(err, repositories.ErrStoreNotConfigured) {
				writeError(w, http.StatusInternalServerError, "DATABASE_URL environment variable not set")
				return
			}
			logger.Log.Errorw("database test failed", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
			writeError(w, http.StatusInternalServerError, "Database test failed")
			return
		}

		writeJSON(w, http.StatusOK, models.StoreTimeResponse{OK: true, Time: now})
	}
}
