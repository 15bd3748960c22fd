package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/platform/logger"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// PostgresLeaveStore implements the store.LeaveRequestStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLeaveStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLeaveStore creates a new PostgreSQL implementation of the
// LeaveRequestStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLeaveStore(db store.DBTX, logger *slog.Logger) *PostgresLeaveStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLeaveStore{
		db:     db,
		logger: logger.With(slog.String("component", "leave_store")),
	}
}

// Ensure PostgresLeaveStore implements store.LeaveRequestStore interface
var _ store.LeaveRequestStore = (*PostgresLeaveStore)(nil)

// WithTx returns a new PostgresLeaveStore that uses the provided transaction.
func (s *PostgresLeaveStore) WithTx(tx *sql.Tx) store.LeaveRequestStore {
	return &PostgresLeaveStore{db: tx, logger: s.logger}
}

const leaveColumns = `id, user_id, type, status, start_date, end_date, note, created_at, updated_at`

// Create implements store.LeaveRequestStore.Create
func (s *PostgresLeaveStore) Create(ctx context.Context, lr *domain.LeaveRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lr.Validate(); err != nil {
		log.Warn("leave request validation failed during create",
			slog.String("error", err.Error()),
			slog.String("leave_request_id", lr.ID.String()))
		return err
	}

	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		lr.ID,
		lr.UserID,
		lr.Type,
		lr.Status,
		lr.StartDate,
		lr.EndDate,
		lr.Note,
		lr.CreatedAt,
		lr.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create leave request",
			slog.String("error", err.Error()),
			slog.String("leave_request_id", lr.ID.String()))
		return MapError(err)
	}

	log.Info("leave request created successfully",
		slog.String("leave_request_id", lr.ID.String()),
		slog.String("user_id", lr.UserID.String()))
	return nil
}

// GetByID implements store.LeaveRequestStore.GetByID
// Returns store.ErrLeaveRequestNotFound if it does not exist.
func (s *PostgresLeaveStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaveRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("leave request not found",
				slog.String("leave_request_id", id.String()))
			return nil, store.ErrLeaveRequestNotFound
		}
		log.Error("failed to get leave request by ID",
			slog.String("error", err.Error()),
			slog.String("leave_request_id", id.String()))
		return nil, err
	}

	return lr, nil
}

// List implements store.LeaveRequestStore.List
func (s *PostgresLeaveStore) List(ctx context.Context, userID *uuid.UUID) ([]*domain.LeaveRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query leave requests",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	requests := []*domain.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			log.Error("failed to scan leave request row",
				slog.String("error", err.Error()))
			return nil, err
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return requests, nil
}

// UpdateStatus implements store.LeaveRequestStore.UpdateStatus
// Returns store.ErrLeaveRequestNotFound if it does not exist.
// Returns validation errors if the status is invalid.
func (s *PostgresLeaveStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeaveStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := &domain.LeaveRequest{
		ID:        id,
		UserID:    uuid.New(),
		Type:      domain.LeaveTypeVacation,
		Status:    status,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC(),
	}
	if err := probe.Validate(); err != nil {
		log.Warn("leave request validation failed during status update",
			slog.String("error", err.Error()),
			slog.String("leave_request_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update leave request status",
			slog.String("error", err.Error()),
			slog.String("leave_request_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLeaveRequestNotFound); err != nil {
		log.Debug("leave request not found for status update",
			slog.String("leave_request_id", id.String()))
		return err
	}

	log.Info("leave request status updated successfully",
		slog.String("leave_request_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// scanLeaveRequest scans one leave request row in leaveColumns order.
func scanLeaveRequest(row rowScanner) (*domain.LeaveRequest, error) {
	var lr domain.LeaveRequest
	var leaveType, status string

	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&leaveType,
		&status,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Note,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	lr.Type = domain.LeaveType(leaveType)
	lr.Status = domain.LeaveStatus(status)
	return &lr, nil
}
