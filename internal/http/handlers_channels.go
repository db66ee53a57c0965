package httpx

import (
	"net/http"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// ChannelHandlers provides HTTP handlers for notification channel operations.
type ChannelHandlers struct {
	Svc *service.ChannelService
}

// channelResponse exposes the verification token on the responses that mint
// one. The token is write-only on the model itself.
type channelResponse struct {
	*model.NotificationChannel
	VerificationToken string `json:"verification_token,omitempty"`
}

// CreateChannel handles HTTP requests to register a notification channel.
// Email channels come back unverified with a one-time verification token.
func (h *ChannelHandlers) CreateChannel(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req model.CreateChannelRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ch, err := h.Svc.Create(r.Context(), account, &req)
	if err != nil {
		writeServiceError(w, "create_failed", err)
		return
	}

	WriteJSON(w, http.StatusCreated, channelResponse{
		NotificationChannel: ch,
		VerificationToken:   ch.VerificationToken,
	})
}

// ListChannels handles HTTP requests to list the account's channels.
func (h *ChannelHandlers) ListChannels(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	channels, err := h.Svc.List(r.Context(), account)
	if err != nil {
		writeServiceError(w, "list_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, channels)
}

// GetChannel handles HTTP requests to fetch a single channel.
func (h *ChannelHandlers) GetChannel(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	ch, err := h.Svc.GetByID(r.Context(), account, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, ch)
}

// UpdateChannel handles HTTP requests to modify a channel. A config change on
// an email channel resets verification, and the response carries the fresh
// verification token.
func (h *ChannelHandlers) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req model.UpdateChannelRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ch, err := h.Svc.Update(r.Context(), account, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, "update_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, channelResponse{
		NotificationChannel: ch,
		VerificationToken:   ch.VerificationToken,
	})
}

// verifyRequest carries the verification token presented by the channel owner.
type verifyRequest struct {
	Token string `json:"token"`
}

// VerifyChannel handles HTTP requests to confirm channel ownership.
func (h *ChannelHandlers) VerifyChannel(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.Verify(r.Context(), account, r.PathValue("id"), req.Token); err != nil {
		writeServiceError(w, "verify_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteChannel handles HTTP requests to delete a channel and its bindings.
func (h *ChannelHandlers) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), account, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
