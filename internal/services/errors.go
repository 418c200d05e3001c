package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind shared by every request shape error.
var ErrInvalidInput = errors.New("invalid input")

// Validation errors, each of kind ErrInvalidInput.
var (
	ErrCredentialsRequired = fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	ErrUsernameLength      = fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, usernameMinLen, usernameMaxLen)
	ErrPasswordLength      = fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, passwordMinLen, passwordMaxLen)
)

// Pipeline errors
var (
	ErrUserAlreadyExists  = errors.New("username already exists")       // Conflict
	ErrInvalidCredentials = errors.New("invalid username or password") // Unknown user or wrong password
	ErrAccountBanned      = errors.New("account is banned")            // Forbidden
	ErrStoreUnavailable   = errors.New("account store unavailable")    // Connection or query failure
)

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
