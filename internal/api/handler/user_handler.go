package handler

import (
	"encoding/json"
	"net/http"

	"itemtrack/internal/api/middleware"
	"itemtrack/internal/app/service"
	"itemtrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers) // GET /api/users (admin only)
	r.Get("/{userID}", h.getUser)
	r.Put("/{userID}", h.updateUser)
	r.Delete("/{userID}", h.deleteUser)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	users, err := h.userService.List(r.Context(), sub)
	if err != nil {
		common.RespondDomainError(w, err, "User not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	user, err := h.userService.Get(r.Context(), sub, chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondDomainError(w, err, "User not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	var payload struct {
		User service.UpdateUserRequest `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userService.Update(r.Context(), sub, chi.URLParam(r, "userID"), payload.User)
	if err != nil {
		common.RespondDomainError(w, err, "User not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	if err := h.userService.Delete(r.Context(), sub, chi.URLParam(r, "userID")); err != nil {
		common.RespondDomainError(w, err, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
