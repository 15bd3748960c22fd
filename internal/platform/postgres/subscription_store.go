package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/platform/logger"
	"github.com/rgoodman/taskdeck-api/internal/redact"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// PostgresSubscriptionStore implements the store.PushSubscriptionStore
// interface using a PostgreSQL database as the storage backend.
type PostgresSubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubscriptionStore creates a new PostgreSQL implementation of
// the PushSubscriptionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSubscriptionStore(db store.DBTX, logger *slog.Logger) *PostgresSubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

// Ensure PostgresSubscriptionStore implements store.PushSubscriptionStore interface
var _ store.PushSubscriptionStore = (*PostgresSubscriptionStore)(nil)

// WithTx returns a new PostgresSubscriptionStore that uses the provided transaction.
func (s *PostgresSubscriptionStore) WithTx(tx *sql.Tx) store.PushSubscriptionStore {
	return &PostgresSubscriptionStore{db: tx, logger: s.logger}
}

// Create implements store.PushSubscriptionStore.Create
// Re-registering an existing endpoint replaces its key material; browsers
// may rotate keys for the same endpoint.
func (s *PostgresSubscriptionStore) Create(ctx context.Context, sub *domain.PushSubscription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sub.Validate(); err != nil {
		log.Warn("subscription validation failed during create",
			slog.String("error", err.Error()),
			slog.String("subscription_id", sub.ID.String()))
		return err
	}

	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh_key, auth_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (endpoint) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			p256dh_key = EXCLUDED.p256dh_key,
			auth_key = EXCLUDED.auth_key
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.Endpoint,
		sub.P256dhKey,
		sub.AuthKey,
		sub.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create subscription",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", sub.UserID.String()))
		return MapError(err)
	}

	log.Info("subscription registered",
		slog.String("subscription_id", sub.ID.String()),
		slog.String("user_id", sub.UserID.String()))
	return nil
}

// FindByUserID implements store.PushSubscriptionStore.FindByUserID
func (s *PostgresSubscriptionStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PushSubscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, endpoint, p256dh_key, auth_key, created_at
		FROM push_subscriptions
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query subscriptions",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	subs := []*domain.PushSubscription{}
	for rows.Next() {
		var sub domain.PushSubscription
		if err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.Endpoint,
			&sub.P256dhKey,
			&sub.AuthKey,
			&sub.CreatedAt,
		); err != nil {
			log.Error("failed to scan subscription row",
				slog.String("error", err.Error()))
			return nil, err
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return subs, nil
}

// DeleteByEndpoint implements store.PushSubscriptionStore.DeleteByEndpoint
// Zero affected rows is success: pruning must be idempotent, and a
// concurrent prune of the same endpoint is a no-op.
func (s *PostgresSubscriptionStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		log.Error("failed to delete subscription by endpoint",
			slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	log.Info("subscription pruned")
	return nil
}

// DeleteByUserEndpoint implements store.PushSubscriptionStore.DeleteByUserEndpoint
// Returns store.ErrSubscriptionNotFound if no such subscription exists.
func (s *PostgresSubscriptionStore) DeleteByUserEndpoint(
	ctx context.Context,
	userID uuid.UUID,
	endpoint string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`,
		userID,
		endpoint,
	)
	if err != nil {
		log.Error("failed to delete subscription",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSubscriptionNotFound); err != nil {
		return err
	}

	log.Info("subscription removed", slog.String("user_id", userID.String()))
	return nil
}
