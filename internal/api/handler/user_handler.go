package handler

import (
	"encoding/json"
	"net/http"

	"authd/internal/api/middleware"
	"authd/internal/app/service"
	"authd/internal/common"
	"authd/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	// Creation is open to anonymous callers; the role policy inside the
	// service consults the resolved identity when one is present.
	r.Post("/", h.create)
	r.With(middleware.Authorize(middleware.Role(model.RoleAdmin))).Get("/", h.list)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	requester := middleware.UserFromContext(r.Context())
	user, err := h.userService.Create(r.Context(), req, requester)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
