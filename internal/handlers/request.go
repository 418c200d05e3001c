package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/sbilibin2017/gw-account-auth/internal/models"
)

// maxBodyBytes caps request bodies; credentials are tiny.
const maxBodyBytes = 1 << 16

const msgInvalidBody = "Invalid request body"

// isForm reports whether the request carries an urlencoded form instead of JSON.
func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func decodeRegisterRequest(w http.ResponseWriter, r *http.Request) (models.RegisterRequest, error) {
	var req models.RegisterRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		req.Email = r.PostForm.Get("email")
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

func decodeLoginRequest(w http.ResponseWriter, r *http.Request) (models.LoginRequest, error) {
	var req models.LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}
