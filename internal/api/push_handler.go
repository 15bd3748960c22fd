package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// SubscribeRequest mirrors the JSON a browser produces from
// PushSubscription.toJSON().
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// UnsubscribeRequest identifies the subscription to remove.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
}

// VAPIDKeyResponse carries the server's public application key, which the
// browser needs to create a subscription.
type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}

// PushKeySource exposes the server's VAPID public key.
type PushKeySource interface {
	PublicKey() string
}

// PushHandler handles push subscription registration endpoints.
type PushHandler struct {
	subscriptionStore store.PushSubscriptionStore
	keys              PushKeySource
	validator         *validator.Validate
}

// NewPushHandler creates a new PushHandler.
func NewPushHandler(subscriptionStore store.PushSubscriptionStore, keys PushKeySource) *PushHandler {
	return &PushHandler{
		subscriptionStore: subscriptionStore,
		keys:              keys,
		validator:         validator.New(),
	}
}

// Subscribe handles POST /api/push/subscribe requests. Re-registering an
// existing endpoint refreshes its key material.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	sub, err := domain.NewPushSubscription(userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.subscriptionStore.Create(r.Context(), sub); err != nil {
		HandleAPIError(w, r, err, "Failed to register subscription")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sub)
}

// Unsubscribe handles POST /api/push/unsubscribe requests. Only the
// owner's own subscription can be removed this way.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UnsubscribeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.subscriptionStore.DeleteByUserEndpoint(r.Context(), userID, req.Endpoint)
	if err != nil {
		if errors.Is(err, store.ErrSubscriptionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Subscription not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to remove subscription")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

// VAPIDPublicKey handles GET /api/push/vapid-public-key requests.
func (h *PushHandler) VAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, VAPIDKeyResponse{
		PublicKey: h.keys.PublicKey(),
	})
}
