package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListRules handles GET /api/rules
func (h *APIHandler) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := database.ListAlertRules(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list alert rules", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, rules)
}

// handleGetRule handles GET /api/rules/{id}
func (h *APIHandler) handleGetRule(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rule, err := database.GetAlertRule(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get alert rule", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, rule)
}

// handleCreateRule handles POST /api/rules
func (h *APIHandler) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRuleRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if req.SystemID != nil {
		if _, err := database.GetSystem(h.db, *req.SystemID); err != nil {
			respondStoreError(w, "Failed to get system", err)
			return
		}
	}

	severity := database.SeverityMinor
	if req.Severity != "" {
		severity = database.ParseSeverity(req.Severity)
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	rule := &database.AlertRule{
		SystemID:    req.SystemID,
		Name:        req.Name,
		Description: req.Description,
		Expression:  req.Expression,
		Severity:    severity,
		Enabled:     enabled,
	}
	if err := database.CreateAlertRule(h.db, rule); err != nil {
		api.RespondInternalError(w, "Failed to create alert rule", err)
		return
	}
	api.RespondJSON(w, http.StatusCreated, rule)
}

// handleUpdateRule handles PATCH /api/rules/{id}
func (h *APIHandler) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.UpdateRuleRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if _, err := database.GetAlertRule(h.db, id); err != nil {
		respondStoreError(w, "Failed to get alert rule", err)
		return
	}

	updates := map[string]interface{}{}
	if req.SystemID != nil {
		if _, err := database.GetSystem(h.db, *req.SystemID); err != nil {
			respondStoreError(w, "Failed to get system", err)
			return
		}
		updates["system_id"] = *req.SystemID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Expression != nil {
		updates["expression"] = *req.Expression
	}
	if req.Severity != nil {
		updates["severity"] = database.ParseSeverity(*req.Severity)
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	rule, err := database.UpdateAlertRule(h.db, id, updates)
	if err != nil {
		respondStoreError(w, "Failed to update alert rule", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, rule)
}

// handleDeleteRule handles DELETE /api/rules/{id}
func (h *APIHandler) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := database.GetAlertRule(h.db, id); err != nil {
		respondStoreError(w, "Failed to get alert rule", err)
		return
	}
	if err := database.DeleteAlertRule(h.db, id); err != nil {
		api.RespondInternalError(w, "Failed to delete alert rule", err)
		return
	}
	api.RespondNoContent(w)
}
