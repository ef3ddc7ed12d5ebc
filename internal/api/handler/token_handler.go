package handler

import (
	"net/http"

	"authd/internal/api/middleware"
	"authd/internal/app/service"
	"authd/internal/common"

	"github.com/go-chi/chi/v5"
)

type TokenHandler struct {
	tokenService *service.TokenService
}

func NewTokenHandler(tokenService *service.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

func (h *TokenHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authorize(middleware.Authenticated))
	r.Get("/", h.list)
	r.Post("/", h.create)
}

func (h *TokenHandler) create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	token, err := h.tokenService.Create(r.Context(), user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, token)
}

func (h *TokenHandler) list(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	tokens, err := h.tokenService.ListForUser(r.Context(), user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tokens)
}
