package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for PushSubscription
var (
	ErrSubscriptionUserEmpty     = errors.New("subscription user ID cannot be empty")
	ErrSubscriptionEndpointEmpty = errors.New("subscription endpoint cannot be empty")
	ErrSubscriptionKeysEmpty     = errors.New("subscription keys cannot be empty")
)

// PushSubscription is a browser-issued delivery address for one device of
// one user: an opaque endpoint URL plus the key material (p256dh public
// key and auth secret) needed to encrypt payloads for it. Subscriptions
// are created when a browser registers for notifications and deleted when
// a delivery attempt fails or the user unsubscribes.
type PushSubscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"p256dh_key"`
	AuthKey   string    `json:"auth_key"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPushSubscription creates a new PushSubscription for the given user.
// It generates a new UUID for the subscription ID and sets the creation
// timestamp. Returns an error if validation fails.
func NewPushSubscription(userID uuid.UUID, endpoint, p256dh, auth string) (*PushSubscription, error) {
	sub := &PushSubscription{
		ID:        uuid.New(),
		UserID:    userID,
		Endpoint:  endpoint,
		P256dhKey: p256dh,
		AuthKey:   auth,
		CreatedAt: time.Now().UTC(),
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}

// Validate checks if the PushSubscription has valid data.
// Returns an error if any field fails validation.
func (s *PushSubscription) Validate() error {
	if s.ID == uuid.Nil {
		return ErrInvalidID
	}

	if s.UserID == uuid.Nil {
		return ErrSubscriptionUserEmpty
	}

	if s.Endpoint == "" {
		return ErrSubscriptionEndpointEmpty
	}

	if s.P256dhKey == "" || s.AuthKey == "" {
		return ErrSubscriptionKeysEmpty
	}

	return nil
}
