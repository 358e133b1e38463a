package user

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserService(NewMemoryUserRepository(), logger, WithBcryptCost(bcrypt.MinCost))
}

func TestRegister_Success(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	user, err := service.Register(ctx, "  Ana  ", "Ana@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	found, err := service.GetUserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := service.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestRegister_ValidationErrors(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		expected error
	}{
		{"missing name", " ", "a@example.com", "secret1", ErrMissingName},
		{"name too long", strings.Repeat("x", maxNameLength+1), "a@example.com", "secret1", ErrNameLength},
		{"invalid email", "Ana", "not-an-email", "secret1", ErrInvalidEmail},
		{"short password", "Ana", "a@example.com", "12345", ErrPasswordLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsInputError(err))
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Other Ana", "ANA@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestGetUserByID_NotFound(t *testing.T) {
	service := newTestService()

	_, err := service.GetUserByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = service.GetUserByID(context.Background(), "5f1c7a0e-8a55-4a55-9d1c-2f5f3c1e1a11")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIDFromContext(t *testing.T) {
	_, ok := IDFromContext(context.Background())
	assert.False(t, ok)

	userID, ok := IDFromContext(NewContext(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", userID)
}

func testRespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func testRespondError(w http.ResponseWriter, status int, message string, _ ...[]string) {
	testRespondJSON(w, status, map[string]interface{}{"status": "error", "message": message, "code": status})
}

func TestHandleGetCurrentUser(t *testing.T) {
	service := newTestService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(service, logger, testRespondJSON, testRespondError)

	registered, err := service.Register(context.Background(), "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req = req.WithContext(NewContext(req.Context(), registered.ID))
	w := httptest.NewRecorder()
	handler.HandleGetCurrentUser(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ana@example.com", body["email"])
	assert.NotContains(t, body, "PasswordHash")
	assert.NotContains(t, body, "password_hash")

	w = httptest.NewRecorder()
	handler.HandleGetCurrentUser(w, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
