package handlers

import (
	"net/http"
	"strconv"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListNotifications handles GET /api/notifications. An optional
// ?incident_id= query narrows the audit trail to one incident.
func (h *APIHandler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	var incidentID uint
	if raw := r.URL.Query().Get("incident_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			api.RespondError(w, http.StatusBadRequest, "invalid incident_id")
			return
		}
		incidentID = uint(parsed)
	}

	notifications, err := database.ListNotifications(h.db, incidentID)
	if err != nil {
		api.RespondInternalError(w, "Failed to list notifications", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, notifications)
}
