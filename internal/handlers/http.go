package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/events"
	"gorm.io/gorm"
)

// HealthHandler exposes the liveness endpoint and the WebSocket event feed
type HealthHandler struct {
	db  *gorm.DB
	hub *events.Hub
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, hub *events.Hub) *HealthHandler {
	return &HealthHandler{db: db, hub: hub}
}

// SetupRoutes sets up the health and event feed routes
func (h *HealthHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ws/events", h.hub.HandleWebSocket)
}

// handleHealth handles GET /health
func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"

	if sqlDB, err := h.db.DB(); err != nil {
		status, dbStatus = "degraded", "unavailable"
	} else if err := sqlDB.PingContext(r.Context()); err != nil {
		status, dbStatus = "degraded", "unavailable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	api.RespondJSON(w, code, map[string]interface{}{
		"status":     status,
		"database":   dbStatus,
		"ws_clients": h.hub.ClientCount(),
	})
}
