package postgres

import (
	"database/sql"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullTime converts an optional time into its sql.NullTime representation.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullUUID converts an optional UUID into its uuid.NullUUID representation.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// timePtr unwraps a scanned sql.NullTime.
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// uuidPtr unwraps a scanned uuid.NullUUID.
func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

// itoa is a shorthand for building numbered query placeholders.
func itoa(n int) string {
	return strconv.Itoa(n)
}

// scanTask scans one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var dueDate, executionDate sql.NullTime
	var assignedTo, recurringTaskID uuid.NullUUID

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&dueDate,
		&executionDate,
		&assignedTo,
		&task.CreatedBy,
		&recurringTaskID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	task.Status = domain.TaskStatus(status)
	task.DueDate = timePtr(dueDate)
	task.ExecutionDate = timePtr(executionDate)
	task.AssignedTo = uuidPtr(assignedTo)
	task.RecurringTaskID = uuidPtr(recurringTaskID)
	return &task, nil
}

// collectTasks drains rows into a slice, returning an empty slice rather
// than nil when there are no results.
func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// closeRows closes rows and logs a failure instead of returning it.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
