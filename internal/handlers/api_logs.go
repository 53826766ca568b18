package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleAnalyzeLogs handles POST /api/logs/analyze. The advisory call is
// best-effort; when the AI endpoint is unavailable the response carries the
// fallback analysis rather than an error.
func (h *APIHandler) handleAnalyzeLogs(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeLogsRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	system, err := database.GetSystem(h.db, req.SystemID)
	if err != nil {
		respondStoreError(w, "Failed to get system", err)
		return
	}

	analysis := h.advisor.AnalyzeLogs(r.Context(), system.DisplayName(), req.LogContent)
	api.RespondJSON(w, http.StatusOK, analysis)
}
