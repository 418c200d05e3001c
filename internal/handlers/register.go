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

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string) (int64, error)
}

// NewRegisterHandler returns an HTTP handler for account registration.
// @Summary Register a new account
// @Description Creates an account with a unique username. The password is stored as a bcrypt hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "Registration request"
// @Success 200 {object} models.AccountResponse "Account created"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 409 {object} models.ErrorResponse "Username already exists"
// @Failure 500 {object} models.ErrorResponse "Registration failed"
// @Router /api/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterRequest(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		id, err := svc.Register(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, invalidInputMessage(err))
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username already exists")
			default:
				logger.Log.Errorw("registration failed", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
				writeError(w, http.StatusInternalServerError, "Registration failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, models.AccountResponse{
			OK:        true,
			Message:   "Account created successfully",
			AccountID: id,
		})
	}
}

// invalidInputMessage returns the caller-facing text for a validation error.
func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrCredentialsRequired):
		return "Username and password are required"
	case errors.Is(err, services.ErrUsernameLength):
		return "Username must be 3-13 characters"
	case errors.Is(err, services.ErrPasswordLength):
		return "Password must be 6-50 characters"
	default:
		return msgInvalidBody
	}
}
