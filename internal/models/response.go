package models

import "time"

// AccountResponse is returned by successful register and login calls
// swagger:model AccountResponse
type AccountResponse struct {
	// example: true
	OK bool `json:"ok"`

	// example: Login successful
	Message string `json:"message"`

	// example: 42
	AccountID int64 `json:"accountId"`
}

// ErrorResponse is returned by every failed call
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: false
	OK bool `json:"ok"`

	// example: Invalid username or password
	Error string `json:"error"`
}

// HealthResponse reports that the process is alive
// swagger:model HealthResponse
type HealthResponse struct {
	// example: true
	OK bool `json:"ok"`

	// example: Server is running
	Message string `json:"message"`
}

// StoreTimeResponse carries the current time reported by the store
// swagger:model StoreTimeResponse
type StoreTimeResponse struct {
	// example: true
	OK bool `json:"ok"`

	// example: 2025-01-01T12:00:00Z
	Time time.Time `json:"time"`
}
