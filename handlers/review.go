package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/utils"
)

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ListReviews(r.Context())
	if err != nil {
		respondStoreError(w, err, "list reviews")
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}

func (h *Handler) ListReviewsByEmail(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ListReviewsByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		respondStoreError(w, err, "list reviews by email")
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := utils.DecodeJSON(w, r, &review); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Store.CreateReview(r.Context(), &review)
	if err != nil {
		respondStoreError(w, err, "create review")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
