package handler

import (
	"net/http"

	"authd/internal/api/middleware"
	"authd/internal/app/service"
	"authd/internal/common"

	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authorize(middleware.Authenticated))
	r.Get("/", h.list)
	r.Post("/prune", h.prune)
}

func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	sessions, err := h.sessionService.ListForUser(r.Context(), user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) prune(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.sessionService.Prune(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
