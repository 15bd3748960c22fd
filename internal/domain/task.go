package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Common validation errors for Task
var (
	ErrTaskTitleEmpty     = errors.New("task title cannot be empty")
	ErrTaskCreatorEmpty   = errors.New("task creator cannot be empty")
	ErrTaskAssigneeNil    = errors.New("task assignee cannot be the nil UUID")
)

// Task represents a unit of work assigned to an employee. DueDate and
// ExecutionDate are calendar dates (time-of-day is ignored); either or
// both may be unset. AssignedTo is nil for unassigned backlog tasks.
type Task struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          TaskStatus `json:"status"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ExecutionDate   *time.Time `json:"execution_date,omitempty"`
	AssignedTo      *uuid.UUID `json:"assigned_to,omitempty"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	RecurringTaskID *uuid.UUID `json:"recurring_task_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewTask creates a new open Task with the given title, creator and
// optional assignee. It generates a new UUID for the task ID and sets the
// creation/update timestamps.
// Returns an error if validation fails.
func NewTask(title, description string, createdBy uuid.UUID, assignedTo *uuid.UUID) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusOpen,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.CreatedBy == uuid.Nil {
		return ErrTaskCreatorEmpty
	}

	if t.AssignedTo != nil && *t.AssignedTo == uuid.Nil {
		return ErrTaskAssigneeNil
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// UpdateStatus moves the task to the given status and updates the
// UpdatedAt timestamp. Returns an error if the new status is invalid.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// DueOn reports whether the task's due date falls on the given calendar
// day, formatted as "2006-01-02".
func (t *Task) DueOn(day string) bool {
	return t.DueDate != nil && t.DueDate.UTC().Format(DayFormat) == day
}

// ExecutesOn reports whether the task's execution date falls on the given
// calendar day, formatted as "2006-01-02".
func (t *Task) ExecutesOn(day string) bool {
	return t.ExecutionDate != nil && t.ExecutionDate.UTC().Format(DayFormat) == day
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
