package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 13
	passwordMinLen = 6
	passwordMaxLen = 50
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Lengths are counted in characters (runes), not bytes.
type registerInput struct {
	Username string `validate:"required,min=3,max=13"`
	Password string `validate:"required,min=6,max=50"`
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// validateRegister checks presence first, then the username length, then the password length.
func validateRegister(username, password string) error {
	return translate(validate.Struct(registerInput{Username: username, Password: password}))
}

// validateLogin only checks presence.
func validateLogin(username, password string) error {
	return translate(validate.Struct(loginInput{Username: username, Password: password}))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrCredentialsRequired
		}
		failed[fe.Field()] = true
	}

	switch {
	case failed["Username"]:
		return ErrUsernameLength
	case failed["Password"]:
		return ErrPasswordLength
	default:
		return ErrInvalidInput
	}
}
