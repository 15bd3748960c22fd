package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType categorizes a leave request.
type LeaveType string

// Possible leave types
const (
	LeaveTypeVacation LeaveType = "vacation"
	LeaveTypeSick     LeaveType = "sick"
	LeaveTypePersonal LeaveType = "personal"
)

// LeaveStatus represents the approval state of a leave request.
type LeaveStatus string

// Possible leave statuses
const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// LeaveRequest represents an employee's request for time off, reviewed by
// an admin.
type LeaveRequest struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Type      LeaveType   `json:"type"`
	Status    LeaveStatus `json:"status"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewLeaveRequest creates a new pending LeaveRequest for the given user
// and date range. Returns an error if validation fails.
func NewLeaveRequest(
	userID uuid.UUID,
	leaveType LeaveType,
	startDate, endDate time.Time,
	note string,
) (*LeaveRequest, error) {
	lr := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      leaveType,
		Status:    LeaveStatusPending,
		StartDate: startDate,
		EndDate:   endDate,
		Note:      note,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := lr.Validate(); err != nil {
		return nil, err
	}

	return lr, nil
}

// Validate checks if the LeaveRequest has valid data.
// Returns an error if any field fails validation.
func (l *LeaveRequest) Validate() error {
	if l.ID == uuid.Nil {
		return ErrInvalidID
	}

	if l.UserID == uuid.Nil {
		return NewValidationError("user_id", "is required", ErrValidation)
	}

	if !isValidLeaveType(l.Type) {
		return ErrInvalidLeaveType
	}

	if !isValidLeaveStatus(l.Status) {
		return ErrInvalidLeaveStatus
	}

	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return NewValidationError("dates", "are required", ErrValidation)
	}

	if l.EndDate.Before(l.StartDate) {
		return ErrInvalidDateRange
	}

	return nil
}

// UpdateStatus moves the request to the given status and updates the
// UpdatedAt timestamp. Returns an error if the new status is invalid.
func (l *LeaveRequest) UpdateStatus(status LeaveStatus) error {
	if !isValidLeaveStatus(status) {
		return ErrInvalidLeaveStatus
	}

	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidLeaveType checks if the given type is a valid LeaveType.
func isValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveTypeVacation, LeaveTypeSick, LeaveTypePersonal:
		return true
	default:
		return false
	}
}

// isValidLeaveStatus checks if the given status is a valid LeaveStatus.
func isValidLeaveStatus(s LeaveStatus) bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	default:
		return false
	}
}
