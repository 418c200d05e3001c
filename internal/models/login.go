package models

// LoginRequest represents the JSON body for account login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: Sora
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password"`
}
