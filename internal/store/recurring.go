package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// RecurringTaskStore defines the interface for recurring task definition
// persistence, plus the trigger for the database-side spawn procedure.
type RecurringTaskStore interface {
	// Create saves a new recurring task definition to the store.
	Create(ctx context.Context, rt *domain.RecurringTask) error

	// GetByID retrieves a definition by its unique ID.
	// Returns ErrRecurringTaskNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringTask, error)

	// List retrieves all definitions, newest first.
	List(ctx context.Context) ([]*domain.RecurringTask, error)

	// Update saves changes to an existing definition, including toggling
	// the active flag. Returns ErrRecurringTaskNotFound if it does not exist.
	Update(ctx context.Context, rt *domain.RecurringTask) error

	// Delete removes a definition. Tasks already spawned from it remain.
	// Returns ErrRecurringTaskNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SpawnDue invokes the spawn_due_recurring_tasks() database function,
	// which materializes concrete task rows for every active definition
	// whose schedule matches the current date and which has not already
	// spawned today. All date matching and per-day idempotency lives in
	// the function. Returns the number of tasks created.
	SpawnDue(ctx context.Context) (int, error)

	// WithTx returns a new RecurringTaskStore instance that uses the provided
	// transaction. The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) RecurringTaskStore
}
