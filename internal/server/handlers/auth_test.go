package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
	"github.com/skillsage/backend/internal/server/token"
	"github.com/skillsage/backend/pkg/api"
)

var testTokens = token.Config{
	AccessKey:  []byte("test-access-secret"),
	RefreshKey: []byte("test-refresh-secret"),
	AccessTTL:  time.Hour,
	RefreshTTL: 30 * 24 * time.Hour,
}

// mockUserStorage is a map-backed UserStorage for handler tests
type mockUserStorage struct {
	users       map[string]*models.User // username -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: map[string]*models.User{}}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, userID, username, nickname string) error {
	for _, user := range m.users {
		if user.ID == userID {
			delete(m.users, user.Username)
			user.Username = username
			user.Nickname = nickname
			m.users[username] = user
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.RefreshToken = &refreshToken
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Message
}

func registerUser(t *testing.T, h *AuthHandler, username, password, secretWord string) api.AuthResponse {
	t.Helper()

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", api.RegisterRequest{
		Username:   username,
		Password:   password,
		SecretWord: secretWord,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	users := newMockUserStorage()
	h := NewAuthHandler(testLogger(), users, testTokens)

	resp := registerUser(t, h, "alice", "pw1", "pet")

	require.NotNil(t, resp.Data)
	assert.Equal(t, "alice", resp.Data.Username)
	assert.NotEmpty(t, resp.Data.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// both tokens verify against their own secrets
	claims, err := token.Verify(testTokens.AccessKey, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	_, err = token.Verify(testTokens.RefreshKey, resp.RefreshToken)
	require.NoError(t, err)

	// the issued refresh token became the stored one
	stored := users.users["alice"]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, resp.RefreshToken, *stored.RefreshToken)

	// hashes, not plaintext
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NotEqual(t, "pet", stored.SecretWordHash)
}

func TestAuthHandler_Register_DuplicateName(t *testing.T) {
	users := newMockUserStorage()
	h := NewAuthHandler(testLogger(), users, testTokens)

	registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", api.RegisterRequest{
		Username:   "alice",
		Password:   "other",
		SecretWord: "word",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name already in use", message(t, rec))
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{name: "empty username", req: api.RegisterRequest{Password: "pw1", SecretWord: "pet"}},
		{name: "bad username", req: api.RegisterRequest{Username: "a b", Password: "pw1", SecretWord: "pet"}},
		{name: "empty password", req: api.RegisterRequest{Username: "alice", SecretWord: "pet"}},
		{name: "empty secret word", req: api.RegisterRequest{Username: "alice", Password: "pw1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", tt.req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	users := newMockUserStorage()
	h := NewAuthHandler(testLogger(), users, testTokens)

	registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "pw1",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "alice", resp.Data.Username)
	assert.NotEmpty(t, resp.AccessToken)

	stored := users.users["alice"]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, resp.RefreshToken, *stored.RefreshToken)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "wrong",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password is not correct", message(t, rec))
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "nobody",
		Password: "pw1",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User does not exist", message(t, rec))
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.PasswordReset, http.MethodPost, "/api/auth/password-reset", api.PasswordResetRequest{
		Username:   "alice",
		Password:   "newpw",
		SecretWord: "pet",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password changed successfully", message(t, rec))

	// old password no longer works, new one does
	rec = doJSON(t, h.Login, http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice", Password: "pw1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.Login, http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice", Password: "newpw",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_PasswordReset_WrongSecretWord(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.PasswordReset, http.MethodPost, "/api/auth/password-reset", api.PasswordResetRequest{
		Username:   "alice",
		Password:   "newpw",
		SecretWord: "dog",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Secret code is not correct", message(t, rec))
}

func TestAuthHandler_Refresh_RotatesExactlyOnce(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registered := registerUser(t, h, "alice", "pw1", "pet")
	oldToken := registered.RefreshToken

	// first refresh succeeds and rotates
	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/auth/refresh-token", api.RefreshRequest{
		Token: oldToken,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, oldToken, resp.RefreshToken)

	// replaying the superseded token fails
	rec = doJSON(t, h.Refresh, http.MethodPost, "/api/auth/refresh-token", api.RefreshRequest{
		Token: oldToken,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Tokens do not match", message(t, rec))

	// the rotated token still works
	rec = doJSON(t, h.Refresh, http.MethodPost, "/api/auth/refresh-token", api.RefreshRequest{
		Token: resp.RefreshToken,
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/auth/refresh-token", api.RefreshRequest{}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthHandler_Refresh_AccessTokenRejected(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registered := registerUser(t, h, "alice", "pw1", "pet")

	// an access token is signed with the wrong secret for refreshing
	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/auth/refresh-token", api.RefreshRequest{
		Token: registered.AccessToken,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	registered := registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.Profile, http.MethodGet, "/api/auth/profile", nil, map[string]string{
		"Authorization": "Bearer " + registered.AccessToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)

	// hashes must not be serialized
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestAuthHandler_Profile_InvalidToken(t *testing.T) {
	h := NewAuthHandler(testLogger(), newMockUserStorage(), testTokens)

	rec := doJSON(t, h.Profile, http.MethodGet, "/api/auth/profile", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	users := newMockUserStorage()
	h := NewAuthHandler(testLogger(), users, testTokens)

	registered := registerUser(t, h, "alice", "pw1", "pet")

	rec := doJSON(t, h.UpdateProfile, http.MethodPut, "/api/auth/profile", api.UpdateProfileRequest{
		Nickname: "Alice the Author",
	}, map[string]string{
		"Authorization": "Bearer " + registered.AccessToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice the Author", user.Nickname)
	assert.Equal(t, "Alice the Author", users.users["alice"].Nickname)
}
