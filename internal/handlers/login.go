package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/middlewares"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
	"github.com/sbilibin2017/gw-account-auth/internal/services"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (int64, error)
}

// NewLoginHandler returns an HTTP handler for account login.
// @Summary Account login
// @Description Verifies the username and password and returns the account id
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.AccountResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Invalid username or password"
// @Failure 403 {object} models.ErrorResponse "Account is banned"
// @Failure 500 {object} models.ErrorResponse "Login failed"
// @Router /api/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		id, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, invalidInputMessage(err))
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid username or password")
			case errors.Is(err, services.ErrAccountBanned):
				writeError(w, http.StatusForbidden, "Account is banned")
			default:
				logger.Log.Errorw("login failed", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
				writeError(w, http.StatusInternalServerError, "Login failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, models.AccountResponse{
			OK:        true,
			Message:   "Login successful",
			AccountID: id,
		})
	}
}
