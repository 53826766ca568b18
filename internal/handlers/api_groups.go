package handlers

import (
	"fmt"
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListGroups handles GET /api/groups
func (h *APIHandler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := database.ListContactGroups(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list contact groups", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, groups)
}

// handleGetGroup handles GET /api/groups/{id}
func (h *APIHandler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := database.GetContactGroup(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get contact group", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, group)
}

// handleCreateGroup handles POST /api/groups
func (h *APIHandler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGroupRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	members, err := h.loadGroupMembers(req.ContactIDs)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	group := &database.ContactGroup{
		Name:        req.Name,
		Description: req.Description,
		Contacts:    members,
	}
	if err := database.CreateContactGroup(h.db, group); err != nil {
		api.RespondInternalError(w, "Failed to create contact group", err)
		return
	}
	api.RespondJSON(w, http.StatusCreated, group)
}

// handleUpdateGroup handles PATCH /api/groups/{id}
func (h *APIHandler) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.UpdateGroupRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	group, err := database.GetContactGroup(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get contact group", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if _, err := database.UpdateContactGroup(h.db, id, updates); err != nil {
			respondStoreError(w, "Failed to update contact group", err)
			return
		}
	}

	// A present contact_ids field replaces the whole membership; null or
	// absent leaves it alone.
	if req.ContactIDs != nil {
		members, err := h.loadGroupMembers(*req.ContactIDs)
		if err != nil {
			api.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := database.SetContactGroupMembers(h.db, group, members); err != nil {
			api.RespondInternalError(w, "Failed to update group membership", err)
			return
		}
	}

	group, err = database.GetContactGroup(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get contact group", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, group)
}

// handleDeleteGroup handles DELETE /api/groups/{id}
func (h *APIHandler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := database.GetContactGroup(h.db, id); err != nil {
		respondStoreError(w, "Failed to get contact group", err)
		return
	}
	if err := database.DeleteContactGroup(h.db, id); err != nil {
		api.RespondInternalError(w, "Failed to delete contact group", err)
		return
	}
	api.RespondNoContent(w)
}

// loadGroupMembers resolves contact IDs to rows, rejecting unknown IDs
func (h *APIHandler) loadGroupMembers(contactIDs []uint) ([]database.Contact, error) {
	members := make([]database.Contact, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		contact, err := database.GetContact(h.db, contactID)
		if err != nil {
			return nil, fmt.Errorf("unknown contact id %d", contactID)
		}
		members = append(members, *contact)
	}
	return members, nil
}
