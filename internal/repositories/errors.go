package repositories

import "errors"

var (
	// ErrStoreNotConfigured is returned by every repository built without a database.
	ErrStoreNotConfigured = errors.New("account store is not configured")

	// ErrDuplicateName is returned when an insert violates the unique account name.
	ErrDuplicateName = errors.New("account name already taken")
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"
