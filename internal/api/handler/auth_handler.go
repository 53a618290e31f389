package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"itemtrack/internal/app/service"
	"itemtrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			common.RespondWithErrors(w, http.StatusUnprocessableEntity, verr.Messages...)
			return
		}
		common.RespondWithErrors(w, common.HTTPStatusFromError(err), "Something went wrong")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		// Unknown email and wrong password produce the same response, so the
		// endpoint cannot be used to enumerate accounts.
		if errors.Is(err, common.ErrUnauthorized) {
			common.RespondWithErrors(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		common.RespondWithErrors(w, common.HTTPStatusFromError(err), "Something went wrong")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
