package handlers

import (
	"net/http"
	"net/url"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleGetLLMSettings handles GET /api/settings/llm
func (h *APIHandler) handleGetLLMSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := database.GetLLMSettings(h.db)
	if err != nil {
		respondStoreError(w, "handleGetLLMSettings", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, llmSettingsResponse(settings))
}

// handleUpdateLLMSettings handles PUT /api/settings/llm
func (h *APIHandler) handleUpdateLLMSettings(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateLLMSettingsRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(&req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}
	if req.BaseURL != nil && !isValidBaseURL(*req.BaseURL) {
		api.RespondError(w, http.StatusBadRequest, "base_url must be a valid HTTP or HTTPS URL")
		return
	}

	settings, err := database.GetLLMSettings(h.db)
	if err != nil {
		respondStoreError(w, "handleUpdateLLMSettings", err)
		return
	}

	updates := make(map[string]interface{})
	if req.APIKey != nil {
		updates["api_key"] = *req.APIKey
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.BaseURL != nil {
		updates["base_url"] = *req.BaseURL
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	if len(updates) > 0 {
		if err := database.UpdateLLMSettings(h.db, settings.ID, updates); err != nil {
			api.RespondInternalError(w, "handleUpdateLLMSettings", err)
			return
		}
	}

	settings, err = database.GetLLMSettings(h.db)
	if err != nil {
		respondStoreError(w, "handleUpdateLLMSettings", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, llmSettingsResponse(settings))
}

// llmSettingsResponse masks the API key before it leaves the server
func llmSettingsResponse(s *database.LLMSettings) map[string]interface{} {
	return map[string]interface{}{
		"id":            s.ID,
		"api_key":       maskToken(s.APIKey),
		"model":         s.Model,
		"base_url":      s.BaseURL,
		"enabled":       s.Enabled,
		"is_configured": s.APIKey != "",
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

// maskToken masks a token for display, showing only the last 4 characters
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

// isValidBaseURL accepts empty (use the default endpoint) or an HTTP(S) URL
func isValidBaseURL(raw string) bool {
	if raw == "" {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
