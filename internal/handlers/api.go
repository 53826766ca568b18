package handlers

import (
	"errors"
	"net/http"

	"github.com/opswatch/opswatch/internal/advisor"
	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/events"
	"github.com/opswatch/opswatch/internal/services"
	"gorm.io/gorm"
)

// APIHandler handles the dashboard REST endpoints
type APIHandler struct {
	db           *gorm.DB
	alertService *services.AlertService
	advisor      *advisor.Client
	hub          *events.Hub
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(db *gorm.DB, alertService *services.AlertService, advisorClient *advisor.Client, hub *events.Hub) *APIHandler {
	return &APIHandler{
		db:           db,
		alertService: alertService,
		advisor:      advisorClient,
		hub:          hub,
	}
}

// SetupRoutes sets up all API routes
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	// Monitored systems
	mux.HandleFunc("GET /api/systems", h.handleListSystems)
	mux.HandleFunc("POST /api/systems", h.handleCreateSystem)
	mux.HandleFunc("GET /api/systems/{id}", h.handleGetSystem)
	mux.HandleFunc("PATCH /api/systems/{id}", h.handleUpdateSystem)
	mux.HandleFunc("DELETE /api/systems/{id}", h.handleDeleteSystem)

	// Contacts
	mux.HandleFunc("GET /api/contacts", h.handleListContacts)
	mux.HandleFunc("POST /api/contacts", h.handleCreateContact)
	mux.HandleFunc("GET /api/contacts/{id}", h.handleGetContact)
	mux.HandleFunc("PATCH /api/contacts/{id}", h.handleUpdateContact)
	mux.HandleFunc("DELETE /api/contacts/{id}", h.handleDeleteContact)

	// Contact groups
	mux.HandleFunc("GET /api/groups", h.handleListGroups)
	mux.HandleFunc("POST /api/groups", h.handleCreateGroup)
	mux.HandleFunc("GET /api/groups/{id}", h.handleGetGroup)
	mux.HandleFunc("PATCH /api/groups/{id}", h.handleUpdateGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", h.handleDeleteGroup)

	// Alert rules
	mux.HandleFunc("GET /api/rules", h.handleListRules)
	mux.HandleFunc("POST /api/rules", h.handleCreateRule)
	mux.HandleFunc("GET /api/rules/{id}", h.handleGetRule)
	mux.HandleFunc("PATCH /api/rules/{id}", h.handleUpdateRule)
	mux.HandleFunc("DELETE /api/rules/{id}", h.handleDeleteRule)

	// Alerts and the ingestion pipeline
	mux.HandleFunc("GET /api/alerts", h.handleListAlerts)
	mux.HandleFunc("GET /api/alerts/active", h.handleListActiveAlerts)
	mux.HandleFunc("POST /api/alerts", h.handleCreateAlert)
	mux.HandleFunc("POST /api/alerts/{id}/acknowledge", h.handleAcknowledgeAlert)
	mux.HandleFunc("POST /api/alerts/{id}/resolve", h.handleResolveAlert)

	// Incidents
	mux.HandleFunc("GET /api/incidents", h.handleListIncidents)
	mux.HandleFunc("GET /api/incidents/{id}", h.handleGetIncident)
	mux.HandleFunc("POST /api/incidents/{id}/assign", h.handleAssignIncident)
	mux.HandleFunc("POST /api/incidents/{id}/resolve", h.handleResolveIncident)

	// Notifications (delivery audit)
	mux.HandleFunc("GET /api/notifications", h.handleListNotifications)

	// On-call schedules
	mux.HandleFunc("GET /api/schedules", h.handleListSchedules)
	mux.HandleFunc("POST /api/schedules", h.handleCreateSchedule)
	mux.HandleFunc("DELETE /api/schedules/{id}", h.handleDeleteSchedule)

	// Log analysis
	mux.HandleFunc("POST /api/logs/analyze", h.handleAnalyzeLogs)

	// Advisory settings
	mux.HandleFunc("GET /api/settings/llm", h.handleGetLLMSettings)
	mux.HandleFunc("PUT /api/settings/llm", h.handleUpdateLLMSettings)
}

// respondStoreError maps a storage error to 404 or a generic 500
func respondStoreError(w http.ResponseWriter, context string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		api.RespondError(w, http.StatusNotFound, "Not found")
		return
	}
	api.RespondInternalError(w, context, err)
}

func (h *APIHandler) publish(eventType events.EventType, payload interface{}) {
	if h.hub != nil {
		h.hub.Publish(eventType, payload)
	}
}
