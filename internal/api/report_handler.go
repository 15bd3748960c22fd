package api

import (
	"net/http"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// ReportHandler serves aggregate reporting endpoints. Admin only; routing
// enforces the role.
type ReportHandler struct {
	taskStore store.TaskStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(taskStore store.TaskStore) *ReportHandler {
	return &ReportHandler{taskStore: taskStore}
}

// TaskSummary handles GET /api/reports/task-summary requests, returning
// per-user task counts grouped by status.
func (h *ReportHandler) TaskSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.taskStore.Summary(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build task summary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rows)
}
