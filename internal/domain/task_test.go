package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	creator := uuid.New()
	assignee := uuid.New()

	task, err := NewTask("Restock shelves", "Aisle 4 first", creator, &assignee)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Status != TaskStatusOpen {
		t.Errorf("Expected status %s, got %s", TaskStatusOpen, task.Status)
	}

	if task.AssignedTo == nil || *task.AssignedTo != assignee {
		t.Errorf("Expected assignee %s, got %v", assignee, task.AssignedTo)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty title
	_, err = NewTask("", "", creator, nil)
	if err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test missing creator
	_, err = NewTask("Restock shelves", "", uuid.Nil, nil)
	if err != ErrTaskCreatorEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskCreatorEmpty, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:        uuid.New(),
		Title:     "Close out register",
		Status:    TaskStatusInProgress,
		CreatedBy: uuid.New(),
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid status
	invalidTask := validTask
	invalidTask.Status = TaskStatus("ARCHIVED")
	if err := invalidTask.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	// Test nil-UUID assignee pointer
	invalidTask = validTask
	nilID := uuid.Nil
	invalidTask.AssignedTo = &nilID
	if err := invalidTask.Validate(); err != ErrTaskAssigneeNil {
		t.Errorf("Expected error %v, got %v", ErrTaskAssigneeNil, err)
	}
}

func TestTaskUpdateStatus(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task := Task{
		ID:        uuid.New(),
		Title:     "Weekly inventory",
		Status:    TaskStatusOpen,
		CreatedBy: uuid.New(),
	}

	if err := task.UpdateStatus(TaskStatusCompleted); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	if err := task.UpdateStatus(TaskStatus("DONE")); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}

func TestTaskDayMatching(t *testing.T) {
	t.Parallel() // Enable parallel execution
	today := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	day := Day(today)

	task := Task{
		ID:        uuid.New(),
		Title:     "Submit payroll",
		Status:    TaskStatusOpen,
		CreatedBy: uuid.New(),
		DueDate:   &today,
	}

	if !task.DueOn(day) {
		t.Errorf("Expected task to be due on %s", day)
	}

	if task.ExecutesOn(day) {
		t.Error("Expected task without execution date not to execute today")
	}

	// A due date late in the day still matches the same calendar day.
	late := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	task.DueDate = &late
	if !task.DueOn(day) {
		t.Errorf("Expected late-in-day due date to match %s", day)
	}
}
