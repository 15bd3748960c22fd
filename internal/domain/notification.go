package domain

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-day convention used everywhere a date is
// compared or rendered: UTC, formatted "2006-01-02". Due and execution
// dates are stored as plain dates under the same convention.
const DayFormat = "2006-01-02"

// Day formats the given instant as a calendar day under the service-wide
// convention.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// NotificationType tags a payload so clients can route clicks.
const (
	NotificationTypeTaskReminder = "task_reminder"
)

// NotificationPayload is the ephemeral message delivered to a browser
// push subscription. Tag is a date-scoped deduplication key: browsers
// that support tag-based replacement collapse notifications sharing a
// tag, so re-running a daily digest replaces rather than stacks.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// Validate checks that the payload carries the minimum content a push
// message needs.
func (p *NotificationPayload) Validate() error {
	if p.Title == "" {
		return NewValidationError("title", "is required", ErrValidation)
	}
	if p.Body == "" {
		return NewValidationError("body", "is required", ErrValidation)
	}
	return nil
}

// DigestTag returns the deduplication tag for daily task digests on the
// given calendar day.
func DigestTag(day string) string {
	return fmt.Sprintf("tasks-%s", day)
}
