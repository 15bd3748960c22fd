package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	user, err := NewUser("maria@example.com", "Maria", RoleEmployee, "long-enough-password")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.IsAdmin() {
		t.Error("Expected employee not to be admin")
	}

	// Test invalid email
	_, err = NewUser("not-an-email", "Maria", RoleEmployee, "long-enough-password")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test short password
	_, err = NewUser("maria@example.com", "Maria", RoleEmployee, "short")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	// Test unknown role
	_, err = NewUser("maria@example.com", "Maria", Role("manager"), "long-enough-password")
	if err != ErrInvalidRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidRole, err)
	}
}

func TestUserValidateWithoutPassword(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// A user loaded from the store has no plaintext password; that must
	// not fail validation.
	user := User{
		ID:             uuid.New(),
		Email:          "admin@example.com",
		DisplayName:    "Admin",
		Role:           RoleAdmin,
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}

	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if !user.IsAdmin() {
		t.Error("Expected admin role to report IsAdmin")
	}
}
