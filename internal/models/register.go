package models

// RegisterRequest represents the JSON body for account registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, 3-13 characters
	// required: true
	// example: Sora
	Username string `json:"username"`

	// Password, 6-50 characters
	// required: true
	// example: secret1
	Password string `json:"password"`

	// Email
	// required: false
	// example: sora@example.com
	Email string `json:"email,omitempty"`
}
