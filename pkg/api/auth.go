package api

import "github.com/skillsage/backend/internal/models"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	SecretWord string `json:"secret_word"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordResetRequest is the body of POST /api/auth/password-reset.
// SecretWord must match the one chosen at registration.
type PasswordResetRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	SecretWord string `json:"secret_word"`
}

// RefreshRequest is the body of POST /api/auth/refresh-token.
type RefreshRequest struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is the body of PUT /api/auth/profile.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// AuthResponse is returned by register and login: the user record plus a
// fresh token pair.
type AuthResponse struct {
	Data         *models.User `json:"data"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// TokenResponse is returned by refresh-token.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MessageResponse carries a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}
