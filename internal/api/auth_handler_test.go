package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rgoodman/taskdeck-api/internal/config"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/service/auth"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// fakeUserStore keeps users in a map keyed by email.
type fakeUserStore struct {
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) List(context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return f }

func newTestAuthHandler(t *testing.T, users *fakeUserStore) *AuthHandler {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:       "test-jwt-secret-that-is-32-chars",
		TokenTTLMinutes: 60,
	})
	require.NoError(t, err)
	return NewAuthHandler(users, jwtService, auth.NewBcryptVerifier(), 60)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates employee account and returns token", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		h := newTestAuthHandler(t, users)

		body, _ := json.Marshal(RegisterRequest{
			Email:       "worker@example.com",
			DisplayName: "Worker",
			Password:    "a-long-enough-password",
		})
		w := httptest.NewRecorder()
		h.Register(w, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, string(domain.RoleEmployee), resp.Role)

		stored := users.byEmail["worker@example.com"]
		require.NotNil(t, stored)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.HashedPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		h := newTestAuthHandler(t, users)

		body, _ := json.Marshal(RegisterRequest{
			Email:       "dup@example.com",
			DisplayName: "First",
			Password:    "a-long-enough-password",
		})
		w := httptest.NewRecorder()
		h.Register(w, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))
		require.Equal(t, http.StatusCreated, w.Code)

		body, _ = json.Marshal(RegisterRequest{
			Email:       "dup@example.com",
			DisplayName: "Second",
			Password:    "a-long-enough-password",
		})
		w = httptest.NewRecorder()
		h.Register(w, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()
		h := newTestAuthHandler(t, newFakeUserStore())

		body, _ := json.Marshal(RegisterRequest{
			Email:       "short@example.com",
			DisplayName: "Short",
			Password:    "tiny",
		})
		w := httptest.NewRecorder()
		h.Register(w, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*AuthHandler, *fakeUserStore) {
		users := newFakeUserStore()
		h := newTestAuthHandler(t, users)
		user, err := domain.NewUser(
			"login@example.com", "Login User", domain.RoleEmployee, "a-long-enough-password")
		require.NoError(t, err)
		require.NoError(t, users.Create(context.Background(), user))
		return h, users
	}

	t.Run("valid credentials return token", func(t *testing.T) {
		t.Parallel()
		h, _ := setup(t)

		body, _ := json.Marshal(LoginRequest{
			Email:    "login@example.com",
			Password: "a-long-enough-password",
		})
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

		require.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		t.Parallel()
		h, _ := setup(t)

		body, _ := json.Marshal(LoginRequest{
			Email:    "login@example.com",
			Password: "not-the-password",
		})
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email rejected with same status", func(t *testing.T) {
		t.Parallel()
		h, _ := setup(t)

		body, _ := json.Marshal(LoginRequest{
			Email:    "nobody@example.com",
			Password: "a-long-enough-password",
		})
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
