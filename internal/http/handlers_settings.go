package httpx

import (
	"net/http"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// SettingHandlers provides HTTP handlers for job notification bindings.
type SettingHandlers struct {
	Svc *service.SettingService
}

// UpsertSetting handles HTTP requests to bind a channel to a job. Repeating
// the call for the same (job, channel) pair replaces the trigger flags.
func (h *SettingHandlers) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req model.UpsertSettingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	setting, err := h.Svc.Upsert(r.Context(), account, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, "upsert_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, setting)
}

// ListSettings handles HTTP requests to list a job's notification bindings.
func (h *SettingHandlers) ListSettings(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	settings, err := h.Svc.ListByJob(r.Context(), account, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "list_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, settings)
}

// DeleteSetting handles HTTP requests to remove a notification binding.
func (h *SettingHandlers) DeleteSetting(w http.ResponseWriter, r *http.Request) {
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
