package handlers

import (
	"net/http"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/middleware"
)

// AuthHandler handles operator login and token verification
type AuthHandler struct {
	auth *middleware.JWTAuthMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *middleware.JWTAuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SetupRoutes sets up the auth routes
func (h *AuthHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("GET /auth/verify", h.handleVerify)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// handleLogin handles POST /auth/login
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	if !h.auth.ValidateCredentials(req.Username, req.Password) {
		api.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(req.Username)
	if err != nil {
		api.RespondInternalError(w, "Failed to generate token", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: req.Username,
	})
}

// handleVerify handles GET /auth/verify. The JWT middleware has already
// validated the token by the time this runs; it just echoes the identity.
func (h *AuthHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUserFromContext(r.Context())
	if username == "" {
		api.RespondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	api.RespondJSON(w, http.StatusOK, map[string]string{"username": username})
}
