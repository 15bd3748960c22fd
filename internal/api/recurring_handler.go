package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// RecurringTaskRequest represents the request body for creating or
// updating a recurring task definition.
type RecurringTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Frequency   string  `json:"frequency" validate:"required,oneof=WEEKLY MONTHLY"`
	DaySelector int     `json:"day_selector"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     *string `json:"end_date"`
	AssignedTo  string  `json:"assigned_to" validate:"required,uuid"`
	Active      *bool   `json:"active"`
}

// RecurringTaskHandler handles recurring task definition requests.
// All routes are admin only; routing enforces the role.
type RecurringTaskHandler struct {
	recurringStore store.RecurringTaskStore
	validator      *validator.Validate
}

// NewRecurringTaskHandler creates a new RecurringTaskHandler.
func NewRecurringTaskHandler(recurringStore store.RecurringTaskStore) *RecurringTaskHandler {
	return &RecurringTaskHandler{
		recurringStore: recurringStore,
		validator:      validator.New(),
	}
}

// Create handles POST /api/recurring-tasks requests.
func (h *RecurringTaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	startDate, err := parseDay("start_date", req.StartDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	endDate, err := parseOptionalDay("end_date", req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	assignee, _ := uuid.Parse(req.AssignedTo)

	rt, err := domain.NewRecurringTask(
		req.Title, req.Description,
		domain.Frequency(req.Frequency), req.DaySelector,
		startDate, endDate,
		assignee, userID,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.recurringStore.Create(r.Context(), rt); err != nil {
		HandleAPIError(w, r, err, "Failed to create recurring task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, rt)
}

// List handles GET /api/recurring-tasks requests.
func (h *RecurringTaskHandler) List(w http.ResponseWriter, r *http.Request) {
	definitions, err := h.recurringStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list recurring tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, definitions)
}

// Update handles PUT /api/recurring-tasks/{id} requests.
func (h *RecurringTaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	rt, err := h.recurringStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	startDate, err := parseDay("start_date", req.StartDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	endDate, err := parseOptionalDay("end_date", req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	assignee, _ := uuid.Parse(req.AssignedTo)

	rt.Title = req.Title
	rt.Description = req.Description
	rt.Frequency = domain.Frequency(req.Frequency)
	rt.DaySelector = req.DaySelector
	rt.StartDate = startDate
	rt.EndDate = endDate
	rt.AssignedTo = assignee
	if req.Active != nil {
		rt.Active = *req.Active
	}
	if err := rt.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.recurringStore.Update(r.Context(), rt); err != nil {
		HandleAPIError(w, r, err, "Failed to update recurring task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rt)
}

// Delete handles DELETE /api/recurring-tasks/{id} requests. Tasks already
// spawned from the definition are left in place.
func (h *RecurringTaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.recurringStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

func (h *RecurringTaskHandler) decodeRequest(
	w http.ResponseWriter,
	r *http.Request,
) (*RecurringTaskRequest, bool) {
	var req RecurringTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return nil, false
	}
	return &req, true
}
