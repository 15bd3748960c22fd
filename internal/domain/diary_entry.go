package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for DiaryEntry
var (
	ErrDiaryUserEmpty = errors.New("diary entry user ID cannot be empty")
	ErrDiaryBodyEmpty = errors.New("diary entry body cannot be empty")
	ErrDiaryDateZero  = errors.New("diary entry date cannot be zero")
)

// DiaryEntry is a self-logged work note for one user on one calendar day.
// There is at most one entry per user per day; writing again replaces the
// body.
type DiaryEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDiaryEntry creates a new DiaryEntry for the given user and day.
// Returns an error if validation fails.
func NewDiaryEntry(userID uuid.UUID, entryDate time.Time, body string) (*DiaryEntry, error) {
	entry := &DiaryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: entryDate,
		Body:      body,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the DiaryEntry has valid data.
// Returns an error if any field fails validation.
func (d *DiaryEntry) Validate() error {
	if d.ID == uuid.Nil {
		return ErrInvalidID
	}

	if d.UserID == uuid.Nil {
		return ErrDiaryUserEmpty
	}

	if d.EntryDate.IsZero() {
		return ErrDiaryDateZero
	}

	if d.Body == "" {
		return ErrDiaryBodyEmpty
	}

	return nil
}
