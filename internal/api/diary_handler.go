package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// UpsertDiaryRequest represents the request body for writing a work diary
// entry. Writing the same day twice replaces the body.
type UpsertDiaryRequest struct {
	EntryDate string `json:"entry_date" validate:"required"`
	Body      string `json:"body" validate:"required,min=1,max=10000"`
}

// DiaryHandler handles work diary HTTP endpoints.
type DiaryHandler struct {
	diaryStore store.DiaryEntryStore
	validator  *validator.Validate
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(diaryStore store.DiaryEntryStore) *DiaryHandler {
	return &DiaryHandler{
		diaryStore: diaryStore,
		validator:  validator.New(),
	}
}

// Upsert handles PUT /api/diary requests.
func (h *DiaryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpsertDiaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entryDate, err := parseDay("entry_date", req.EntryDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, err := domain.NewDiaryEntry(userID, entryDate, req.Body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.diaryStore.Upsert(r.Context(), entry); err != nil {
		HandleAPIError(w, r, err, "Failed to save diary entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Range handles GET /api/diary?from=YYYY-MM-DD&to=YYYY-MM-DD requests,
// returning the authenticated user's entries oldest first.
func (h *DiaryHandler) Range(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if _, err := parseDay("from", from); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if _, err := parseDay("to", to); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.diaryStore.FindByUserRange(r.Context(), userID, from, to)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read diary entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
