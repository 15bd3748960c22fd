package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// CreateLeaveRequest represents the request body for requesting time off.
type CreateLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=vacation sick personal"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Note      string `json:"note" validate:"max=1000"`
}

// UpdateLeaveStatusRequest represents an admin's approval decision.
type UpdateLeaveStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// LeaveHandler handles leave request HTTP endpoints.
type LeaveHandler struct {
	leaveStore store.LeaveRequestStore
	validator  *validator.Validate
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveStore store.LeaveRequestStore) *LeaveHandler {
	return &LeaveHandler{
		leaveStore: leaveStore,
		validator:  validator.New(),
	}
}

// Create handles POST /api/leave-requests. The request is always created
// for the authenticated user, in pending state.
func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateLeaveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	startDate, err := parseDay("start_date", req.StartDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	endDate, err := parseDay("end_date", req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lr, err := domain.NewLeaveRequest(userID, domain.LeaveType(req.Type), startDate, endDate, req.Note)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.leaveStore.Create(r.Context(), lr); err != nil {
		HandleAPIError(w, r, err, "Failed to create leave request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, lr)
}

// List handles GET /api/leave-requests. Admins see every request,
// employees only their own.
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var requests []*domain.LeaveRequest
	var err error
	if isAdmin(r) {
		requests, err = h.leaveStore.List(r.Context(), nil)
	} else {
		requests, err = h.leaveStore.List(r.Context(), &userID)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list leave requests")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requests)
}

// UpdateStatus handles PATCH /api/leave-requests/{id}/status. Admin only;
// routing enforces the role.
func (h *LeaveHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateLeaveStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.leaveStore.UpdateStatus(r.Context(), id, domain.LeaveStatus(req.Status)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}
