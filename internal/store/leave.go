package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// LeaveRequestStore defines the interface for leave request persistence.
type LeaveRequestStore interface {
	// Create saves a new leave request to the store.
	Create(ctx context.Context, lr *domain.LeaveRequest) error

	// GetByID retrieves a leave request by its unique ID.
	// Returns ErrLeaveRequestNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaveRequest, error)

	// List retrieves leave requests, newest first. When userID is non-nil,
	// only that user's requests are returned.
	List(ctx context.Context, userID *uuid.UUID) ([]*domain.LeaveRequest, error)

	// UpdateStatus moves a leave request to the given approval status.
	// Returns ErrLeaveRequestNotFound if it does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeaveStatus) error

	// WithTx returns a new LeaveRequestStore instance that uses the provided
	// transaction. The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) LeaveRequestStore
}
