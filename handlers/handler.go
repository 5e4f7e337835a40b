package handlers

import (
	"errors"
	"net/http"

	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/payment"
	"github.com/ray-remotestate/bistro/utils"
	"github.com/sirupsen/logrus"
)

// Handler carries the dependencies every endpoint needs. It is built once
// at startup and shared by all requests.
type Handler struct {
	Store        database.Store
	Tokens       *utils.TokenCodec
	Payments     *payment.Service
	CookieSecure bool
}

func New(store database.Store, tokens *utils.TokenCodec, payments *payment.Service, cookieSecure bool) *Handler {
	return &Handler{
		Store:        store,
		Tokens:       tokens,
		Payments:     payments,
		CookieSecure: cookieSecure,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		logrus.WithError(err).Warn("health check: store unreachable")
		utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]bool{"alive": false})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"alive": true})
}

// respondStoreError maps a store failure to a response. Malformed ids are
// the caller's fault; anything else is logged and hidden behind a 500.
func respondStoreError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, database.ErrInvalidID) {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	logrus.WithError(err).Errorf("failed to %s", action)
	utils.RespondError(w, http.StatusInternalServerError, "internal server error")
}

// respondDocument writes a single looked up document. A missing document is
// answered with 200 and a null body.
func respondDocument[T any](w http.ResponseWriter, doc *T, err error, action string) {
	if errors.Is(err, database.ErrNotFound) {
		utils.RespondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondStoreError(w, err, action)
		return
	}
	utils.RespondJSON(w, http.StatusOK, doc)
}
