package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListSystems handles GET /api/systems
func (h *APIHandler) handleListSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := database.ListSystems(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list systems", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, systems)
}

// handleGetSystem handles GET /api/systems/{id}
func (h *APIHandler) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	system, err := database.GetSystem(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get system", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, system)
}

// handleCreateSystem handles POST /api/systems
func (h *APIHandler) handleCreateSystem(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSystemRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	level := req.SeverityLevel
	if level == 0 {
		level = 3
	}
	system := &database.System{
		Name:          req.Name,
		Address:       req.Address,
		SeverityLevel: level,
		Status:        database.SeverityClear,
		ExternalCode:  req.ExternalCode,
		ChatGroupID:   req.ChatGroupID,
	}
	if err := database.CreateSystem(h.db, system); err != nil {
		api.RespondInternalError(w, "Failed to create system", err)
		return
	}
	api.RespondJSON(w, http.StatusCreated, system)
}

// handleUpdateSystem handles PATCH /api/systems/{id}
func (h *APIHandler) handleUpdateSystem(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.UpdateSystemRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if _, err := database.GetSystem(h.db, id); err != nil {
		respondStoreError(w, "Failed to get system", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.SeverityLevel != nil {
		updates["severity_level"] = *req.SeverityLevel
	}
	if req.Status != nil {
		updates["status"] = database.ParseSeverity(*req.Status)
	}
	if req.ExternalCode != nil {
		updates["external_code"] = *req.ExternalCode
	}
	if req.ChatGroupID != nil {
		updates["chat_group_id"] = *req.ChatGroupID
	}

	system, err := database.UpdateSystem(h.db, id, updates)
	if err != nil {
		respondStoreError(w, "Failed to update system", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, system)
}

// handleDeleteSystem handles DELETE /api/systems/{id}
func (h *APIHandler) handleDeleteSystem(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := database.GetSystem(h.db, id); err != nil {
		respondStoreError(w, "Failed to get system", err)
		return
	}
	if err := database.DeleteSystem(h.db, id); err != nil {
		api.RespondInternalError(w, "Failed to delete system", err)
		return
	}
	api.RespondNoContent(w)
}
