package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserID extracts the authenticated user's UUID or writes a 401
// response. Returns false if an error response was written.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(r *http.Request) bool {
	role, ok := shared.GetUserRole(r.Context())
	return ok && role == domain.RoleAdmin
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseDay parses a calendar day in the service-wide "2006-01-02"
// convention, anchored to UTC.
func parseDay(field, value string) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DayFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError(
			field, "must be formatted YYYY-MM-DD", domain.ErrValidation)
	}
	return day, nil
}

// parseOptionalDay parses a nullable calendar day request field.
func parseOptionalDay(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	day, err := parseDay(field, *value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
