package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/platform/logger"
)

// TaskReader is the slice of task persistence the pipeline needs.
type TaskReader interface {
	// FindDueOn retrieves all non-completed tasks whose due date or
	// execution date falls on the given calendar day.
	FindDueOn(ctx context.Context, day string) ([]*domain.Task, error)
}

// SubscriptionStore is the slice of subscription persistence the
// pipeline needs: lookup for fan-out and deletion for pruning.
type SubscriptionStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// Pusher delivers an encrypted message to a single subscription.
type Pusher interface {
	Send(ctx context.Context, sub *domain.PushSubscription, message []byte) error
}

// UserResult is the per-assignee breakdown included in a daily run
// report for operator visibility.
type UserResult struct {
	UserID        uuid.UUID `json:"user_id"`
	TaskCount     int       `json:"task_count"`
	Subscriptions int       `json:"subscriptions"`
	Sent          int       `json:"sent"`
	Pruned        int       `json:"pruned"`
	Skipped       bool      `json:"skipped,omitempty"`
}

// DailyRunReport summarizes one invocation of the daily pipeline.
type DailyRunReport struct {
	Day                 string       `json:"day"`
	TasksFound          int          `json:"tasks_found"`
	UsersNotified       int          `json:"users_notified"`
	NotificationsSent   int          `json:"notifications_sent"`
	SubscriptionsPruned int          `json:"subscriptions_pruned"`
	Details             []UserResult `json:"details"`
}

// SendResult summarizes a direct send to one user.
type SendResult struct {
	UserID        uuid.UUID `json:"user_id"`
	Subscriptions int       `json:"subscriptions"`
	Sent          int       `json:"sent"`
	Failed        int       `json:"failed"`
	Pruned        int       `json:"pruned"`
	Message       string    `json:"message,omitempty"`
}

// Service runs the due-task notification pipeline and the direct send
// primitive. It holds no state across invocations; the only persistent
// side effect is pruning subscriptions that fail delivery.
type Service struct {
	tasks  TaskReader
	subs   SubscriptionStore
	pusher Pusher
	logger *slog.Logger
	now    func() time.Time // Injectable for testing
}

// NewService creates a notification service.
func NewService(
	tasks TaskReader,
	subs SubscriptionStore,
	pusher Pusher,
	logger *slog.Logger,
) *Service {
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if subs == nil {
		panic("subs cannot be nil")
	}
	if pusher == nil {
		panic("pusher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		tasks:  tasks,
		subs:   subs,
		pusher: pusher,
		logger: logger.With(slog.String("component", "notify_service")),
		now:    time.Now,
	}
}

// RunDaily executes one pass of the due-task pipeline: fetch today's
// qualifying tasks, group them by assignee, compose one digest per
// assignee and fan delivery out to every registered subscription.
//
// A failure reading tasks aborts the run with an error and nothing is
// sent. Delivery failures are local: the failing subscription is pruned
// and sibling deliveries proceed. The run settles every attempt before
// returning its report.
func (s *Service) RunDaily(ctx context.Context) (*DailyRunReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	day := domain.Day(s.now())

	tasks, err := s.tasks.FindDueOn(ctx, day)
	if err != nil {
		log.Error("failed to query due tasks", "error", err, "day", day)
		return nil, fmt.Errorf("failed to query tasks due on %s: %w", day, err)
	}

	groups := groupByAssignee(tasks)
	report := &DailyRunReport{
		Day:        day,
		TasksFound: len(tasks),
		Details:    make([]UserResult, 0, len(groups)),
	}

	log.Info("daily notification run started",
		"day", day,
		"tasks_found", len(tasks),
		"assignees", len(groups))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]UserResult, 0, len(groups))
	)

	for userID, userTasks := range groups {
		wg.Add(1)
		go func(userID uuid.UUID, userTasks []*domain.Task) {
			defer wg.Done()
			result := s.notifyUser(ctx, day, userID, userTasks)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(userID, userTasks)
	}
	wg.Wait()

	// Deterministic ordering for the response body and logs.
	sort.Slice(results, func(i, j int) bool {
		return results[i].UserID.String() < results[j].UserID.String()
	})

	for _, r := range results {
		report.Details = append(report.Details, r)
		report.NotificationsSent += r.Sent
		report.SubscriptionsPruned += r.Pruned
		if r.Sent > 0 {
			report.UsersNotified++
		}
	}

	log.Info("daily notification run finished",
		"day", day,
		"users_notified", report.UsersNotified,
		"notifications_sent", report.NotificationsSent,
		"subscriptions_pruned", report.SubscriptionsPruned)

	return report, nil
}

// notifyUser composes and delivers the digest for one assignee. Errors
// are absorbed into the result so one user never affects another.
func (s *Service) notifyUser(
	ctx context.Context,
	day string,
	userID uuid.UUID,
	tasks []*domain.Task,
) UserResult {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := UserResult{UserID: userID, TaskCount: len(tasks)}

	subs, err := s.subs.FindByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to load subscriptions",
			"error", err,
			"user_id", userID)
		result.Skipped = true
		return result
	}
	result.Subscriptions = len(subs)

	if len(subs) == 0 {
		log.Debug("no subscriptions registered, skipping user",
			"user_id", userID,
			"task_count", len(tasks))
		result.Skipped = true
		return result
	}

	payload := ComposeDigest(day, tasks)
	message, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to encode payload",
			"error", err,
			"user_id", userID)
		result.Skipped = true
		return result
	}

	sent, pruned := s.deliverAll(ctx, userID, subs, message)
	result.Sent = sent
	result.Pruned = pruned
	return result
}

// deliverAll fans a message out to every subscription concurrently and
// waits for all attempts to settle. Failed endpoints are pruned; pruning
// an endpoint that is already gone is tolerated.
func (s *Service) deliverAll(
	ctx context.Context,
	userID uuid.UUID,
	subs []*domain.PushSubscription,
	message []byte,
) (sent, pruned int) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *domain.PushSubscription) {
			defer wg.Done()
			if err := s.pusher.Send(ctx, sub, message); err != nil {
				log.Warn("push delivery failed, pruning subscription",
					"error", err,
					"user_id", userID,
					"subscription_id", sub.ID)
				if delErr := s.subs.DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil {
					log.Error("failed to prune subscription",
						"error", delErr,
						"user_id", userID,
						"subscription_id", sub.ID)
					return
				}
				mu.Lock()
				pruned++
				mu.Unlock()
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(sub)
	}
	wg.Wait()
	return sent, pruned
}

// SendToUser delivers an arbitrary payload to every subscription the
// given user has registered. A user with no subscriptions is reported as
// success with an explicit message, not as an error.
func (s *Service) SendToUser(
	ctx context.Context,
	userID uuid.UUID,
	payload *domain.NotificationPayload,
) (*SendResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	subs, err := s.subs.FindByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to load subscriptions",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load subscriptions for user %s: %w", userID, err)
	}

	result := &SendResult{UserID: userID, Subscriptions: len(subs)}
	if len(subs) == 0 {
		result.Message = "no subscriptions registered for user"
		return result, nil
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	sent, pruned := s.deliverAll(ctx, userID, subs, message)
	result.Sent = sent
	result.Pruned = pruned
	result.Failed = len(subs) - sent

	log.Info("direct notification dispatched",
		"user_id", userID,
		"subscriptions", len(subs),
		"sent", sent,
		"pruned", pruned)

	return result, nil
}

// groupByAssignee partitions tasks by assignee, dropping unassigned
// tasks and anything already completed.
func groupByAssignee(tasks []*domain.Task) map[uuid.UUID][]*domain.Task {
	groups := make(map[uuid.UUID][]*domain.Task)
	for _, task := range tasks {
		if task.AssignedTo == nil || task.Status == domain.TaskStatusCompleted {
			continue
		}
		groups[*task.AssignedTo] = append(groups[*task.AssignedTo], task)
	}
	return groups
}
