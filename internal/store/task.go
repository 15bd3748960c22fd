package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// TaskFilter narrows List queries. Zero-valued fields are ignored.
type TaskFilter struct {
	// Status restricts results to one workflow state.
	Status domain.TaskStatus

	// AssignedTo restricts results to one assignee.
	AssignedTo *uuid.UUID

	// DueOn restricts results to tasks due on the given calendar day,
	// formatted "2006-01-02".
	DueOn string
}

// TaskSummaryRow is one row of the per-user task report: how many tasks a
// user holds in a given status.
type TaskSummaryRow struct {
	UserID      uuid.UUID         `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Status      domain.TaskStatus `json:"status"`
	Count       int               `json:"count"`
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves tasks matching the filter, newest first.
	// Returns an empty slice if no tasks match.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus updates the status of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error

	// Delete removes a task from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDueOn retrieves all non-completed tasks whose due date or
	// execution date equals the given calendar day ("2006-01-02").
	// Returns an empty slice if no tasks qualify.
	FindDueOn(ctx context.Context, day string) ([]*domain.Task, error)

	// Summary returns per-user task counts grouped by status, for
	// reporting. Unassigned tasks are not included.
	Summary(ctx context.Context) ([]TaskSummaryRow, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
