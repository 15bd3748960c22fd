package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Role determines which parts of the API a user may call.
type Role string

// Possible user roles
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Password length constraints, in bytes. The upper bound matches the
// bcrypt input limit.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

// Common validation errors for User
var (
	ErrUserEmailEmpty   = errors.New("user email cannot be empty")
	ErrUserNameEmpty    = errors.New("user display name cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
)

// User represents an account that can log in, be assigned tasks,
// request leave, and register push subscriptions.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Role           Role      `json:"role"`
	HashedPassword string    `json:"-"`
	// Password is only populated transiently during registration and is
	// never persisted or serialized.
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email, display name, role and
// plaintext password. It generates a new UUID for the user ID and sets the
// creation/update timestamps. The password is carried in the Password field
// for the store layer to hash; it is not hashed here.
// Returns an error if validation fails.
func NewUser(email, displayName string, role Role, password string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Password:    password,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrInvalidID
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if u.DisplayName == "" {
		return ErrUserNameEmpty
	}

	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}

	// Only validate the plaintext password when it is present; a user
	// loaded from the store carries only the hash.
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	}

	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// isValidRole checks if the given role is a valid Role.
func isValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}
