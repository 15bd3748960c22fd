package notify

import (
	"fmt"

	"github.com/rgoodman/taskdeck-api/internal/domain"
)

// Default payload presentation shared by all task digests.
const (
	digestIcon = "/icons/icon-192.png"
	digestURL  = "/tasks"
)

// ComposeDigest builds the single push payload for one assignee's tasks
// falling on the given calendar day.
//
// With exactly one task the wording reflects which date field matched:
// execution-date wording wins when both fields fall on the same day.
// With two or more tasks the payload carries only the count; individual
// titles are deliberately not enumerated so the digest stays a single
// concise notification.
//
// The Tag field is date-scoped so browsers replace an earlier digest for
// the same day instead of stacking a duplicate.
func ComposeDigest(day string, tasks []*domain.Task) *domain.NotificationPayload {
	payload := &domain.NotificationPayload{
		Icon: digestIcon,
		URL:  digestURL,
		Type: domain.NotificationTypeTaskReminder,
		Tag:  domain.DigestTag(day),
	}

	if len(tasks) == 1 {
		task := tasks[0]
		if task.ExecutesOn(day) {
			payload.Title = "Task scheduled today"
			payload.Body = fmt.Sprintf("%q is scheduled for execution today.", task.Title)
		} else {
			payload.Title = "Task due today"
			payload.Body = fmt.Sprintf("%q is due today.", task.Title)
		}
		return payload
	}

	payload.Title = fmt.Sprintf("%d tasks today", len(tasks))
	payload.Body = fmt.Sprintf("You have %d tasks due or scheduled for today.", len(tasks))
	return payload
}
