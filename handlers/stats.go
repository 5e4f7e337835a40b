package handlers

import (
	"net/http"

	"github.com/ray-remotestate/bistro/utils"
)

func (h *Handler) CategorySales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Store.CategorySales(r.Context())
	if err != nil {
		respondStoreError(w, err, "aggregate category sales")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sales)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.AdminStats(r.Context())
	if err != nil {
		respondStoreError(w, err, "compute admin stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}
