package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"authd/internal/app/service"
	"authd/internal/common"
	"authd/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService *service.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, sessionID, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	http.SetCookie(w, security.SessionCookie(r, sessionID.String(), h.cookieTTL))
	common.RespondWithJSON(w, http.StatusOK, user)
}
