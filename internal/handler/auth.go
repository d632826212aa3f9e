package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"hostsadmin/internal/config"
)

// AuthHandler checks the single admin credential pair. There is no
// session management; the dashboard keeps its own logged-in flag.
type AuthHandler struct {
	auth config.AuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	OK       bool   `json:"ok"`
	Username string `json:"username,omitempty"`
}

// Login validates the credential pair. A configured bcrypt hash takes
// precedence over the plain password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, "Invalid credentials", "Username and password are required", http.StatusBadRequest)
		return
	}

	if !h.check(req.Username, req.Password) {
		writeError(w, "Invalid credentials", "", http.StatusUnauthorized)
		return
	}

	writeJSON(w, loginResponse{OK: true, Username: req.Username}, http.StatusOK)
}

func (h *AuthHandler) check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.auth.Username)) == 1

	if h.auth.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(h.auth.PasswordHash), []byte(password))
		return userOK && err == nil
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.auth.Password)) == 1
	return userOK && passOK
}
