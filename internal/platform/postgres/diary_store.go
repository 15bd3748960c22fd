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

// PostgresDiaryStore implements the store.DiaryEntryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDiaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDiaryStore creates a new PostgreSQL implementation of the
// DiaryEntryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDiaryStore(db store.DBTX, logger *slog.Logger) *PostgresDiaryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDiaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "diary_store")),
	}
}

// Ensure PostgresDiaryStore implements store.DiaryEntryStore interface
var _ store.DiaryEntryStore = (*PostgresDiaryStore)(nil)

// WithTx returns a new PostgresDiaryStore that uses the provided transaction.
func (s *PostgresDiaryStore) WithTx(tx *sql.Tx) store.DiaryEntryStore {
	return &PostgresDiaryStore{db: tx, logger: s.logger}
}

// Upsert implements store.DiaryEntryStore.Upsert
// One entry per user per day; writing again replaces the body.
func (s *PostgresDiaryStore) Upsert(ctx context.Context, entry *domain.DiaryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("diary entry validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO diary_entries (id, user_id, entry_date, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, entry_date) DO UPDATE
		SET body = EXCLUDED.body, updated_at = $7
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.EntryDate,
		entry.Body,
		entry.CreatedAt,
		entry.UpdatedAt,
		time.Now().UTC(),
	)

	if err != nil {
		log.Error("failed to upsert diary entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()))
		return MapError(err)
	}

	log.Info("diary entry saved",
		slog.String("user_id", entry.UserID.String()),
		slog.String("entry_date", domain.Day(entry.EntryDate)))
	return nil
}

// FindByUserRange implements store.DiaryEntryStore.FindByUserRange
func (s *PostgresDiaryStore) FindByUserRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]*domain.DiaryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, entry_date, body, created_at, updated_at
		FROM diary_entries
		WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query diary entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	entries := []*domain.DiaryEntry{}
	for rows.Next() {
		var entry domain.DiaryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.EntryDate,
			&entry.Body,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			log.Error("failed to scan diary entry row",
				slog.String("error", err.Error()))
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return entries, nil
}
