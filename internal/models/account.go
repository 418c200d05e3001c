package models

import (
	"database/sql"
	"time"
)

// Fixed values written to the auxiliary columns of a new account.
const (
	DefaultGender = 0
	DefaultTOS    = 1
)

// DefaultBirthday is the birthday stored for every new account.
var DefaultBirthday = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// AccountDB represents a row of the accounts table.
type AccountDB struct {
	ID           int64          `db:"id"`       // Assigned by the store
	Name         string         `db:"name"`     // Unique login name
	PasswordHash string         `db:"password"` // bcrypt hash
	Email        sql.NullString `db:"email"`    // Optional, unvalidated
	Birthday     sql.NullTime   `db:"birthday"`
	Gender       int            `db:"gender"`
	Creation     time.Time      `db:"creation"`
	Banned       sql.NullInt64  `db:"banned"`   // 1 means banned; NULL is not banned
	LoggedIn     int            `db:"loggedin"` // Not maintained by this service
	TOS          int            `db:"tos"`
}

// IsBanned reports whether the ban flag is set. Only the value 1 counts as banned.
func (a *AccountDB) IsBanned() bool {
	return a.Banned.Valid && a.Banned.Int64 == 1
}

// NewAccount holds the values needed to insert an account row.
type NewAccount struct {
	Name         string
	PasswordHash string
	Email        string
	Creation     time.Time
}
