package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
)

// CronAuthMiddleware guards the machine endpoints invoked by the external
// scheduler. Callers present a static shared secret as a bearer token;
// there is no user identity behind these requests.
type CronAuthMiddleware struct {
	secret []byte
}

// NewCronAuthMiddleware creates a middleware validating the given shared secret.
func NewCronAuthMiddleware(secret string) *CronAuthMiddleware {
	return &CronAuthMiddleware{secret: []byte(secret)}
}

// RequireSecret rejects requests without the correct bearer secret.
// The comparison is constant-time to avoid leaking prefix matches.
// A rejected request produces no reads, sends or deletions.
func (m *CronAuthMiddleware) RequireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), m.secret) != 1 {
			slog.Warn("cron endpoint rejected invalid secret",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}
