package handler

import (
	"encoding/json"
	"net/http"

	"itemtrack/internal/api/middleware"
	"itemtrack/internal/app/service"
	"itemtrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listItems)   // GET /api/items
	r.Post("/", h.createItem) // POST /api/items
	r.Get("/{itemID}", h.getItem)
	r.Put("/{itemID}", h.updateItem)
	r.Delete("/{itemID}", h.deleteItem)
}

func (h *ItemHandler) listItems(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	items, err := h.itemService.List(r.Context(), sub)
	if err != nil {
		common.RespondDomainError(w, err, "Item not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) getItem(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	item, err := h.itemService.Get(r.Context(), sub, chi.URLParam(r, "itemID"))
	if err != nil {
		common.RespondDomainError(w, err, "Item not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) createItem(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	var payload struct {
		Item service.CreateItemRequest `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.itemService.Create(r.Context(), sub, payload.Item)
	if err != nil {
		common.RespondDomainError(w, err, "Item not found")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	var payload struct {
		Item service.UpdateItemRequest `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithErrors(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.itemService.Update(r.Context(), sub, chi.URLParam(r, "itemID"), payload.Item)
	if err != nil {
		common.RespondDomainError(w, err, "Item not found")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondUnauthorized(w)
		return
	}

	if err := h.itemService.Delete(r.Context(), sub, chi.URLParam(r, "itemID")); err != nil {
		common.RespondDomainError(w, err, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
