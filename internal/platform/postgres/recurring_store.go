package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/platform/logger"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// PostgresRecurringTaskStore implements the store.RecurringTaskStore
// interface using a PostgreSQL database as the storage backend.
type PostgresRecurringTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecurringTaskStore creates a new PostgreSQL implementation of
// the RecurringTaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRecurringTaskStore(db store.DBTX, logger *slog.Logger) *PostgresRecurringTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRecurringTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "recurring_task_store")),
	}
}

// Ensure PostgresRecurringTaskStore implements store.RecurringTaskStore interface
var _ store.RecurringTaskStore = (*PostgresRecurringTaskStore)(nil)

// WithTx returns a new PostgresRecurringTaskStore that uses the provided transaction.
func (s *PostgresRecurringTaskStore) WithTx(tx *sql.Tx) store.RecurringTaskStore {
	return &PostgresRecurringTaskStore{db: tx, logger: s.logger}
}

const recurringColumns = `id, title, description, frequency, day_selector,
	start_date, end_date, assigned_to, created_by, active, created_at, updated_at`

// Create implements store.RecurringTaskStore.Create
func (s *PostgresRecurringTaskStore) Create(ctx context.Context, rt *domain.RecurringTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rt.Validate(); err != nil {
		log.Warn("recurring task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", rt.ID.String()))
		return err
	}

	query := `
		INSERT INTO recurring_tasks (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rt.ID,
		rt.Title,
		rt.Description,
		rt.Frequency,
		rt.DaySelector,
		rt.StartDate,
		nullTime(rt.EndDate),
		rt.AssignedTo,
		rt.CreatedBy,
		rt.Active,
		rt.CreatedAt,
		rt.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create recurring task",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", rt.ID.String()))
		return MapError(err)
	}

	log.Info("recurring task created successfully",
		slog.String("recurring_task_id", rt.ID.String()),
		slog.String("frequency", string(rt.Frequency)))
	return nil
}

// GetByID implements store.RecurringTaskStore.GetByID
// Returns store.ErrRecurringTaskNotFound if it does not exist.
func (s *PostgresRecurringTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + recurringColumns + ` FROM recurring_tasks WHERE id = $1`

	rt, err := scanRecurringTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("recurring task not found",
				slog.String("recurring_task_id", id.String()))
			return nil, store.ErrRecurringTaskNotFound
		}
		log.Error("failed to get recurring task by ID",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", id.String()))
		return nil, err
	}

	return rt, nil
}

// List implements store.RecurringTaskStore.List
func (s *PostgresRecurringTaskStore) List(ctx context.Context) ([]*domain.RecurringTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + recurringColumns + ` FROM recurring_tasks ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query recurring tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	defs := []*domain.RecurringTask{}
	for rows.Next() {
		rt, err := scanRecurringTask(rows)
		if err != nil {
			log.Error("failed to scan recurring task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		defs = append(defs, rt)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return defs, nil
}

// Update implements store.RecurringTaskStore.Update
// Returns store.ErrRecurringTaskNotFound if it does not exist.
func (s *PostgresRecurringTaskStore) Update(ctx context.Context, rt *domain.RecurringTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rt.Validate(); err != nil {
		log.Warn("recurring task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", rt.ID.String()))
		return err
	}

	query := `
		UPDATE recurring_tasks
		SET title = $1, description = $2, frequency = $3, day_selector = $4,
			start_date = $5, end_date = $6, assigned_to = $7, active = $8,
			updated_at = $9
		WHERE id = $10
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		rt.Title,
		rt.Description,
		rt.Frequency,
		rt.DaySelector,
		rt.StartDate,
		nullTime(rt.EndDate),
		rt.AssignedTo,
		rt.Active,
		rt.UpdatedAt,
		rt.ID,
	)

	if err != nil {
		log.Error("failed to update recurring task",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", rt.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrRecurringTaskNotFound); err != nil {
		log.Debug("recurring task not found for update",
			slog.String("recurring_task_id", rt.ID.String()))
		return err
	}

	log.Info("recurring task updated successfully",
		slog.String("recurring_task_id", rt.ID.String()),
		slog.Bool("active", rt.Active))
	return nil
}

// Delete implements store.RecurringTaskStore.Delete
// Returns store.ErrRecurringTaskNotFound if it does not exist.
func (s *PostgresRecurringTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete recurring task",
			slog.String("error", err.Error()),
			slog.String("recurring_task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrRecurringTaskNotFound); err != nil {
		return err
	}

	log.Info("recurring task deleted successfully",
		slog.String("recurring_task_id", id.String()))
	return nil
}

// SpawnDue implements store.RecurringTaskStore.SpawnDue
// All schedule matching and per-day idempotency lives in the
// spawn_due_recurring_tasks() function; this method only invokes it and
// reports how many tasks it created.
func (s *PostgresRecurringTaskStore) SpawnDue(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created int
	err := s.db.QueryRowContext(ctx, `SELECT spawn_due_recurring_tasks()`).Scan(&created)
	if err != nil {
		log.Error("failed to spawn recurring tasks",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	log.Info("recurring tasks spawned", slog.Int("created", created))
	return created, nil
}

// scanRecurringTask scans one definition row in recurringColumns order.
func scanRecurringTask(row rowScanner) (*domain.RecurringTask, error) {
	var rt domain.RecurringTask
	var frequency string
	var endDate sql.NullTime

	err := row.Scan(
		&rt.ID,
		&rt.Title,
		&rt.Description,
		&frequency,
		&rt.DaySelector,
		&rt.StartDate,
		&endDate,
		&rt.AssignedTo,
		&rt.CreatedBy,
		&rt.Active,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	rt.Frequency = domain.Frequency(frequency)
	rt.EndDate = timePtr(endDate)
	return &rt, nil
}
