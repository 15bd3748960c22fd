package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Frequency determines how often a recurring task definition spawns
// concrete task instances.
type Frequency string

// Possible recurrence frequencies
const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// Common validation errors for RecurringTask
var (
	ErrRecurringTitleEmpty    = errors.New("recurring task title cannot be empty")
	ErrRecurringAssigneeEmpty = errors.New("recurring task assignee cannot be empty")
	ErrRecurringCreatorEmpty  = errors.New("recurring task creator cannot be empty")
	ErrRecurringStartZero     = errors.New("recurring task start date cannot be zero")
)

// RecurringTask is a template describing how and when to automatically
// generate concrete task instances. The day selector is a weekday (0-6,
// Sunday=0) for weekly definitions or a day of the month (1-31) for
// monthly ones. Date matching and per-day idempotency are implemented by
// the spawn_due_recurring_tasks() database function, not in Go; this type
// only carries the definition.
type RecurringTask struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Frequency   Frequency  `json:"frequency"`
	DaySelector int        `json:"day_selector"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	AssignedTo  uuid.UUID  `json:"assigned_to"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewRecurringTask creates a new active RecurringTask definition.
// It generates a new UUID for the definition ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewRecurringTask(
	title, description string,
	frequency Frequency,
	daySelector int,
	startDate time.Time,
	endDate *time.Time,
	assignedTo, createdBy uuid.UUID,
) (*RecurringTask, error) {
	rt := &RecurringTask{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Frequency:   frequency,
		DaySelector: daySelector,
		StartDate:   startDate,
		EndDate:     endDate,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := rt.Validate(); err != nil {
		return nil, err
	}

	return rt, nil
}

// Validate checks if the RecurringTask has valid data.
// Returns an error if any field fails validation.
func (r *RecurringTask) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}

	if r.Title == "" {
		return ErrRecurringTitleEmpty
	}

	if r.AssignedTo == uuid.Nil {
		return ErrRecurringAssigneeEmpty
	}

	if r.CreatedBy == uuid.Nil {
		return ErrRecurringCreatorEmpty
	}

	if r.StartDate.IsZero() {
		return ErrRecurringStartZero
	}

	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return ErrInvalidDateRange
	}

	switch r.Frequency {
	case FrequencyWeekly:
		if r.DaySelector < 0 || r.DaySelector > 6 {
			return ErrInvalidDaySelector
		}
	case FrequencyMonthly:
		if r.DaySelector < 1 || r.DaySelector > 31 {
			return ErrInvalidDaySelector
		}
	default:
		return ErrInvalidFrequency
	}

	return nil
}
