package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/service/notify"
)

// RecurringSpawner triggers the database-side materialization of due
// recurring tasks and reports how many were created.
type RecurringSpawner interface {
	SpawnDue(ctx context.Context) (int, error)
}

// NotificationRunner is the slice of the notification service the cron
// endpoints use.
type NotificationRunner interface {
	RunDaily(ctx context.Context) (*notify.DailyRunReport, error)
	SendToUser(ctx context.Context, userID uuid.UUID, payload *domain.NotificationPayload) (*notify.SendResult, error)
}

// SendNotificationRequest represents the request body for the direct send
// endpoint.
type SendNotificationRequest struct {
	UserID  string                      `json:"user_id" validate:"required,uuid"`
	Payload *domain.NotificationPayload `json:"payload" validate:"required"`
}

// SpawnResponse reports the outcome of a spawn trigger.
type SpawnResponse struct {
	TasksCreated int `json:"tasks_created"`
}

// CronHandler handles the machine endpoints called by the external
// scheduler. Authentication is enforced by CronAuthMiddleware on the
// route group, not here.
type CronHandler struct {
	spawner   RecurringSpawner
	notifier  NotificationRunner
	validator *validator.Validate
}

// NewCronHandler creates a new CronHandler.
func NewCronHandler(spawner RecurringSpawner, notifier NotificationRunner) *CronHandler {
	return &CronHandler{
		spawner:   spawner,
		notifier:  notifier,
		validator: validator.New(),
	}
}

// SpawnRecurringTasks handles GET /api/cron/spawn-recurring-tasks. It is
// a pure authenticated pass-through to the database procedure: all
// recurrence matching and per-day idempotency lives there. There is no
// retry; the next scheduled invocation is the retry mechanism.
func (h *CronHandler) SpawnRecurringTasks(w http.ResponseWriter, r *http.Request) {
	created, err := h.spawner.SpawnDue(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to spawn recurring tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{
		Success: true,
		Data:    SpawnResponse{TasksCreated: created},
	})
}

// DailyNotifications handles GET /api/cron/daily-notifications. A failure
// reading tasks aborts the whole run with 500; per-subscription delivery
// failures are absorbed into the report.
func (h *CronHandler) DailyNotifications(w http.ResponseWriter, r *http.Request) {
	report, err := h.notifier.RunDaily(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to run daily notifications", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{
		Success: true,
		Data:    report,
	})
}

// SendNotification handles POST /api/notifications/send, the direct
// delivery primitive. A target with no subscriptions is success with an
// explicit message, not an error.
func (h *CronHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id")
		return
	}

	result, err := h.notifier.SendToUser(r.Context(), userID, req.Payload)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{
		Success: true,
		Message: result.Message,
		Data:    result,
	})
}
