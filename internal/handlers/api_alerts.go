package handlers

import (
	"errors"
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/services"
)

// handleListAlerts handles GET /api/alerts
func (h *APIHandler) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePagination(r)
	alerts, total, err := database.ListAlertsPage(h.db, page.Offset(), page.PerPage)
	if err != nil {
		api.RespondInternalError(w, "Failed to list alerts", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
		Data: alerts,
		Pagination: api.PaginationMeta{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      total,
			TotalPages: page.TotalPages(total),
		},
	})
}

// handleListActiveAlerts handles GET /api/alerts/active
func (h *APIHandler) handleListActiveAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := database.ListActiveAlerts(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list active alerts", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, alerts)
}

// handleCreateAlert handles POST /api/alerts. This is the ingestion
// endpoint: it persists the alert, mirrors the system status, creates one
// incident and queues notification fan-out, returning once the synchronous
// part of the pipeline is committed.
func (h *APIHandler) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req api.CreateAlertRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	alert, incident, err := h.alertService.Ingest(r.Context(), services.IngestInput{
		SystemID: req.SystemID,
		Severity: database.ParseSeverity(req.Severity),
		Message:  req.Message,
		Details:  database.JSONB(req.Details),
	})
	if err != nil {
		api.RespondInternalError(w, "Failed to ingest alert", err)
		return
	}

	api.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"alert":    alert,
		"incident": incident,
	})
}

// handleAcknowledgeAlert handles POST /api/alerts/{id}/acknowledge
func (h *APIHandler) handleAcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.AcknowledgeAlertRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	alert, err := h.alertService.Acknowledge(id, req.AcknowledgedBy)
	if err != nil {
		if errors.Is(err, services.ErrIdentityRequired) {
			api.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStoreError(w, "Failed to acknowledge alert", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, alert)
}

// handleResolveAlert handles POST /api/alerts/{id}/resolve
func (h *APIHandler) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.ResolveAlertRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	alert, err := h.alertService.Resolve(id, req.ResolvedBy)
	if err != nil {
		if errors.Is(err, services.ErrIdentityRequired) {
			api.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStoreError(w, "Failed to resolve alert", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, alert)
}
