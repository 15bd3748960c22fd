package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewPushSubscription(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	sub, err := NewPushSubscription(userID, "https://push.example.com/send/abc", "p256dh-key", "auth-secret")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sub.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, sub.UserID)
	}

	// Test missing endpoint
	_, err = NewPushSubscription(userID, "", "p256dh-key", "auth-secret")
	if err != ErrSubscriptionEndpointEmpty {
		t.Errorf("Expected error %v, got %v", ErrSubscriptionEndpointEmpty, err)
	}

	// Test missing key material
	_, err = NewPushSubscription(userID, "https://push.example.com/send/abc", "", "auth-secret")
	if err != ErrSubscriptionKeysEmpty {
		t.Errorf("Expected error %v, got %v", ErrSubscriptionKeysEmpty, err)
	}

	// Test missing user
	_, err = NewPushSubscription(uuid.Nil, "https://push.example.com/send/abc", "p256dh-key", "auth-secret")
	if err != ErrSubscriptionUserEmpty {
		t.Errorf("Expected error %v, got %v", ErrSubscriptionUserEmpty, err)
	}
}

func TestDigestTag(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if got := DigestTag("2025-03-14"); got != "tasks-2025-03-14" {
		t.Errorf("Expected tag tasks-2025-03-14, got %s", got)
	}
}
