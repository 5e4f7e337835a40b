package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/utils"
)

func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.Store.ListMenus(r.Context())
	if err != nil {
		respondStoreError(w, err, "list menus")
		return
	}
	utils.RespondJSON(w, http.StatusOK, menus)
}

func (h *Handler) CountMenus(w http.ResponseWriter, r *http.Request) {
	count, err := h.Store.CountMenus(r.Context())
	if err != nil {
		respondStoreError(w, err, "count menus")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Store.GetMenu(r.Context(), mux.Vars(r)["id"])
	respondDocument(w, menu, err, "get menu")
}

func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := utils.DecodeJSON(w, r, &item); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Category == "" {
		utils.RespondError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	if item.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	result, err := h.Store.CreateMenu(r.Context(), &item)
	if err != nil {
		respondStoreError(w, err, "create menu")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	var update models.MenuUpdate
	if err := utils.DecodeJSON(w, r, &update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.IsEmpty() {
		utils.RespondError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if update.Price != nil && *update.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	result, err := h.Store.UpdateMenu(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		respondStoreError(w, err, "update menu")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	result, err := h.Store.DeleteMenu(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err, "delete menu")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
