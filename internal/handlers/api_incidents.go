package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/events"
)

// handleListIncidents handles GET /api/incidents
func (h *APIHandler) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePagination(r)
	incidents, total, err := database.ListIncidentsPage(h.db, page.Offset(), page.PerPage)
	if err != nil {
		api.RespondInternalError(w, "Failed to list incidents", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
		Data: incidents,
		Pagination: api.PaginationMeta{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      total,
			TotalPages: page.TotalPages(total),
		},
	})
}

// handleGetIncident handles GET /api/incidents/{id}
func (h *APIHandler) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	incident, err := database.GetIncident(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get incident", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, incident)
}

// handleAssignIncident handles POST /api/incidents/{id}/assign
func (h *APIHandler) handleAssignIncident(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.AssignIncidentRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if _, err := database.GetIncident(h.db, id); err != nil {
		respondStoreError(w, "Failed to get incident", err)
		return
	}

	incident, err := database.AssignIncident(h.db, id, req.AssignedTo)
	if err != nil {
		respondStoreError(w, "Failed to assign incident", err)
		return
	}
	h.publish(events.EventIncidentAssigned, incident)
	api.RespondJSON(w, http.StatusOK, incident)
}

// handleResolveIncident handles POST /api/incidents/{id}/resolve.
// Resolving an incident does not touch the linked alert or the system
// status; those move through the alert resolve endpoint.
func (h *APIHandler) handleResolveIncident(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.ResolveIncidentRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if _, err := database.GetIncident(h.db, id); err != nil {
		respondStoreError(w, "Failed to get incident", err)
		return
	}

	incident, err := database.ResolveIncident(h.db, id, req.Resolution)
	if err != nil {
		respondStoreError(w, "Failed to resolve incident", err)
		return
	}
	h.publish(events.EventIncidentResolved, incident)
	api.RespondJSON(w, http.StatusOK, incident)
}
