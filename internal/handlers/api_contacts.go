package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListContacts handles GET /api/contacts
func (h *APIHandler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := database.ListContacts(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list contacts", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, contacts)
}

// handleGetContact handles GET /api/contacts/{id}
func (h *APIHandler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := database.GetContact(h.db, id)
	if err != nil {
		respondStoreError(w, "Failed to get contact", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, contact)
}

// handleCreateContact handles POST /api/contacts
func (h *APIHandler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req api.CreateContactRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	contact := &database.Contact{
		Name:   req.Name,
		Unit:   req.Unit,
		Role:   req.Role,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: active,
	}
	if err := database.CreateContact(h.db, contact); err != nil {
		api.RespondInternalError(w, "Failed to create contact", err)
		return
	}
	api.RespondJSON(w, http.StatusCreated, contact)
}

// handleUpdateContact handles PATCH /api/contacts/{id}
func (h *APIHandler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.UpdateContactRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if _, err := database.GetContact(h.db, id); err != nil {
		respondStoreError(w, "Failed to get contact", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	contact, err := database.UpdateContact(h.db, id, updates)
	if err != nil {
		respondStoreError(w, "Failed to update contact", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, contact)
}

// handleDeleteContact handles DELETE /api/contacts/{id}
func (h *APIHandler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := database.GetContact(h.db, id); err != nil {
		respondStoreError(w, "Failed to get contact", err)
		return
	}
	if err := database.DeleteContact(h.db, id); err != nil {
		api.RespondInternalError(w, "Failed to delete contact", err)
		return
	}
	api.RespondNoContent(w)
}
