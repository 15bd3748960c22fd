package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/service/auth"
)

// stubJWTService resolves a fixed set of tokens to claims.
type stubJWTService struct {
	tokens map[string]*auth.Claims
	errs   map[string]error
}

func (s *stubJWTService) GenerateToken(context.Context, uuid.UUID, domain.Role) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if claims, ok := s.tokens[token]; ok {
		return claims, nil
	}
	return nil, auth.ErrInvalidToken
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubJWTService{
		tokens: map[string]*auth.Claims{
			"good-token": {UserID: userID, Role: domain.RoleEmployee},
		},
		errs: map[string]error{
			"stale-token": auth.ErrExpiredToken,
		},
	}
	m := NewAuthMiddleware(svc)

	var gotUserID uuid.UUID
	var gotOK bool
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"expired token", "Bearer stale-token", http.StatusUnauthorized},
		{"unknown token", "Bearer bogus", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotOK = false
			r := httptest.NewRequest("GET", "/api/tasks", nil)
			if tc.authHeader != "" {
				r.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.True(t, gotOK)
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	employeeID := uuid.New()
	svc := &stubJWTService{
		tokens: map[string]*auth.Claims{
			"admin-token":    {UserID: adminID, Role: domain.RoleAdmin},
			"employee-token": {UserID: employeeID, Role: domain.RoleEmployee},
		},
	}
	m := NewAuthMiddleware(svc)

	handler := m.Authenticate(m.RequireAdmin(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/api/reports/task-summary", nil)
		r.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employee forbidden", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/api/reports/task-summary", nil)
		r.Header.Set("Authorization", "Bearer employee-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/api/reports/task-summary", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
