package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
	"github.com/skillsage/backend/internal/server/token"
	"github.com/skillsage/backend/internal/validation"
	"github.com/skillsage/backend/pkg/api"
)

// bcryptCost matches the cost the rest of the deployment's hashes were
// created with.
const bcryptCost = 10

// AuthHandler serves registration, login, password reset, token refresh and
// profile requests.
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens token.Config
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens token.Config) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.SecretWord == "" {
		sendError(h.logger, w, "secret_word is required", http.StatusBadRequest)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	secretWordHash, err := bcrypt.GenerateFromPassword([]byte(req.SecretWord), bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash secret word", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       req.Username,
		PasswordHash:   string(passwordHash),
		SecretWordHash: string(secretWordHash),
		CreatedAt:      time.Now(),
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "Name already in use", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	accessToken, refreshToken, err := h.issueAndStore(r, user)
	if err != nil {
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{
		Data:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, http.StatusOK)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		sendError(h.logger, w, "Password is not correct", http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, err := h.issueAndStore(r, user)
	if err != nil {
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{
		Data:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, http.StatusOK)
}

// PasswordReset handles POST /api/auth/password-reset.
// The secret word chosen at registration authorizes the change.
func (h *AuthHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode password reset request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretWordHash), []byte(req.SecretWord)); err != nil {
		sendError(h.logger, w, "Secret code is not correct", http.StatusBadRequest)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password reset", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password changed successfully"}, http.StatusOK)
}

// Refresh handles POST /api/auth/refresh-token.
// The presented refresh token must verify against the refresh secret AND
// match the single stored token exactly; an older token that was since
// rotated out fails with "Tokens do not match".
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Token == "" {
		sendError(h.logger, w, "A token is required for refreshing", http.StatusForbidden)
		return
	}

	claims, err := token.Verify(h.tokens.RefreshKey, req.Token)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid refresh token", slog.Any("error", err))
		sendError(h.logger, w, "Invalid Token", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User does not exist", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if user.RefreshToken == nil || *user.RefreshToken != req.Token {
		h.logger.WarnContext(ctx, "refresh token mismatch", slog.String("user_id", user.ID))
		sendError(h.logger, w, "Tokens do not match", http.StatusUnauthorized)
		return
	}

	accessToken, refreshToken, err := h.issueAndStore(r, user)
	if err != nil {
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, http.StatusOK)
}

// Profile handles GET /api/auth/profile.
// Identity comes from decoding the already-gated bearer token.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, user, http.StatusOK)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile update request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	username := user.Username
	if req.Username != "" {
		if err := validation.ValidateUsername(req.Username); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		username = req.Username
	}

	nickname := user.Nickname
	if req.Nickname != "" {
		nickname = req.Nickname
	}

	if err := h.users.UpdateProfile(ctx, user.ID, username, nickname); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "Name already in use", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	user.Username = username
	user.Nickname = nickname

	sendJSON(h.logger, w, user, http.StatusOK)
}

// issueAndStore issues a fresh token pair and makes the refresh token the
// user's single active one.
func (h *AuthHandler) issueAndStore(r *http.Request, user *models.User) (accessToken, refreshToken string, err error) {
	ctx := r.Context()

	accessToken, refreshToken, err = token.IssuePair(h.tokens, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		return "", "", err
	}

	if err = h.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		h.logger.ErrorContext(ctx, "failed to store refresh token", slog.Any("error", err))
		return "", "", err
	}

	user.RefreshToken = &refreshToken

	return accessToken, refreshToken, nil
}
