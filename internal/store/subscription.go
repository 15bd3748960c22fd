package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// PushSubscriptionStore defines the interface for push subscription
// persistence. Subscriptions are only ever created by the subscribe
// endpoint and deleted on failed delivery or explicit unsubscribe.
type PushSubscriptionStore interface {
	// Create saves a new subscription. Re-registering an endpoint that
	// already exists replaces its key material rather than failing, since
	// browsers may rotate keys for the same endpoint.
	Create(ctx context.Context, sub *domain.PushSubscription) error

	// FindByUserID retrieves all subscriptions registered by a user.
	// Returns an empty slice if the user has none.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.PushSubscription, error)

	// DeleteByEndpoint removes the subscription with the given endpoint
	// URL. Deleting an endpoint that is already gone is not an error;
	// pruning must be idempotent.
	DeleteByEndpoint(ctx context.Context, endpoint string) error

	// DeleteByUserEndpoint removes a subscription only if it belongs to
	// the given user, for explicit unsubscribes.
	// Returns ErrSubscriptionNotFound if no such subscription exists.
	DeleteByUserEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error

	// WithTx returns a new PushSubscriptionStore instance that uses the provided
	// transaction. The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) PushSubscriptionStore
}
