package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/middlewares"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/payment"
	"github.com/ray-remotestate/bistro/utils"
	"github.com/sirupsen/logrus"
)

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Price float64 `json:"price"`
	}

	var req request
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	secret, err := h.Payments.CreateIntent(r.Context(), req.Price)
	switch {
	case errors.Is(err, payment.ErrNonPositiveAmount), errors.Is(err, payment.ErrAmountTooLarge):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, payment.ErrNotConfigured):
		utils.RespondError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	case err != nil:
		logrus.WithError(err).Error("failed to create payment intent")
		utils.RespondError(w, http.StatusBadGateway, "failed to create payment intent")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

func (h *Handler) ListPaymentsByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !middlewares.RequireSameEmail(w, r, email) {
		return
	}

	payments, err := h.Store.ListPaymentsByEmail(r.Context(), email)
	if err != nil {
		respondStoreError(w, err, "list payments")
		return
	}
	utils.RespondJSON(w, http.StatusOK, payments)
}

// Checkout records a payment and clears the payer's carts it references in
// one step.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := utils.DecodeJSON(w, r, &p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if !middlewares.RequireSameEmail(w, r, p.Email) {
		return
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}

	result, err := h.Store.Checkout(r.Context(), &p)
	if err != nil {
		respondStoreError(w, err, "checkout")
		return
	}
	logrus.WithFields(logrus.Fields{
		"email":        p.Email,
		"amount":       p.Amount,
		"cartsDeleted": result.DeleteCartInfo.DeletedCount,
	}).Info("payment recorded")
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var update models.PaymentUpdate
	if err := utils.DecodeJSON(w, r, &update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.IsEmpty() {
		utils.RespondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	result, err := h.Store.UpdatePayment(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		respondStoreError(w, err, "update payment")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// ListOrders returns every payment to an admin.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if !middlewares.RequireSameEmail(w, r, mux.Vars(r)["email"]) {
		return
	}

	payments, err := h.Store.ListPayments(r.Context())
	if err != nil {
		respondStoreError(w, err, "list orders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, payments)
}
