package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/middlewares"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/utils"
)

func (h *Handler) ListCarts(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if !middlewares.RequireSameEmail(w, r, email) {
		return
	}

	carts, err := h.Store.ListCartsByEmail(r.Context(), email)
	if err != nil {
		respondStoreError(w, err, "list carts")
		return
	}
	utils.RespondJSON(w, http.StatusOK, carts)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Store.GetCart(r.Context(), mux.Vars(r)["id"])
	if err == nil && !middlewares.RequireSameEmail(w, r, cart.Email) {
		return
	}
	respondDocument(w, cart, err, "get cart")
}

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := utils.DecodeJSON(w, r, &item); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.Email = strings.TrimSpace(item.Email)
	if item.Email == "" || item.MenuID == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and menuId are required")
		return
	}

	result, err := h.Store.CreateCart(r.Context(), &item)
	if err != nil {
		respondStoreError(w, err, "create cart")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeleteCart removes a single cart item owned by the caller.
func (h *Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	cart, err := h.Store.GetCart(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		utils.RespondJSON(w, http.StatusOK, models.DeleteResult{Acknowledged: true})
		return
	}
	if err != nil {
		respondStoreError(w, err, "get cart")
		return
	}
	if !middlewares.RequireSameEmail(w, r, cart.Email) {
		return
	}

	result, err := h.Store.DeleteCart(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "delete cart")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
