package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Description   string  `json:"description" validate:"max=2000"`
	DueDate       *string `json:"due_date"`
	ExecutionDate *string `json:"execution_date"`
	AssignedTo    *string `json:"assigned_to"`
}

// UpdateTaskRequest represents the request body for updating a task.
type UpdateTaskRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Description   string  `json:"description" validate:"max=2000"`
	DueDate       *string `json:"due_date"`
	ExecutionDate *string `json:"execution_date"`
	AssignedTo    *string `json:"assigned_to"`
}

// UpdateTaskStatusRequest represents the request body for a status change.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS COMPLETED"`
}

// TaskHandler handles task management HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
	}
}

// Create handles POST /api/tasks requests. Only admins may assign tasks
// to other users; employees create tasks for themselves.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	assignee, err := h.resolveAssignee(r, userID, req.AssignedTo)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := domain.NewTask(req.Title, req.Description, userID, assignee)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if task.DueDate, err = parseOptionalDay("due_date", req.DueDate); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if task.ExecutionDate, err = parseOptionalDay("execution_date", req.ExecutionDate); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /api/tasks requests. Admins see every task; employees
// see only their own. Status and due-date filters come from query params.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := store.TaskFilter{
		Status: domain.TaskStatus(r.URL.Query().Get("status")),
		DueOn:  r.URL.Query().Get("due_on"),
	}
	if isAdmin(r) {
		if assignee := r.URL.Query().Get("assignee"); assignee != "" {
			assigneeID, err := uuid.Parse(assignee)
			if err != nil {
				HandleAPIError(w, r, domain.ErrInvalidID, "Invalid assignee filter")
				return
			}
			filter.AssignedTo = &assigneeID
		}
	} else {
		// Employees only ever see their own tasks.
		filter.AssignedTo = &userID
	}

	tasks, err := h.taskStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !h.canAccess(r, userID, task) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !h.canAccess(r, userID, task) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	assignee, err := h.resolveAssignee(r, userID, req.AssignedTo)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.AssignedTo = assignee
	if task.DueDate, err = parseOptionalDay("due_date", req.DueDate); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if task.ExecutionDate, err = parseOptionalDay("execution_date", req.ExecutionDate); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := task.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateStatus handles PATCH /api/tasks/{id}/status requests.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !h.canAccess(r, userID, task) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	if err := h.taskStore.UpdateStatus(r.Context(), taskID, domain.TaskStatus(req.Status)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/tasks/{id} requests. Admin only; routing
// enforces the role.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

// canAccess reports whether the requester may read or modify the task:
// admins always, employees only for tasks they created or hold.
func (h *TaskHandler) canAccess(r *http.Request, userID uuid.UUID, task *domain.Task) bool {
	if isAdmin(r) {
		return true
	}
	if task.CreatedBy == userID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == userID
}

// resolveAssignee parses the optional assignee field. Employees may only
// assign to themselves.
func (h *TaskHandler) resolveAssignee(
	r *http.Request,
	userID uuid.UUID,
	raw *string,
) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		if isAdmin(r) {
			return nil, nil
		}
		return &userID, nil
	}

	assignee, err := uuid.Parse(*raw)
	if err != nil {
		return nil, domain.NewValidationError("assigned_to", "has invalid format", domain.ErrInvalidID)
	}
	if !isAdmin(r) && assignee != userID {
		return nil, domain.ErrUnauthorized
	}
	return &assignee, nil
}
