package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// DiaryEntryStore defines the interface for work diary persistence.
type DiaryEntryStore interface {
	// Upsert saves a diary entry, replacing the body if the user already
	// has an entry for that calendar day.
	Upsert(ctx context.Context, entry *domain.DiaryEntry) error

	// FindByUserRange retrieves a user's entries whose date falls within
	// [from, to], oldest first. Returns an empty slice if there are none.
	FindByUserRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.DiaryEntry, error)

	// WithTx returns a new DiaryEntryStore instance that uses the provided
	// transaction. The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) DiaryEntryStore
}
