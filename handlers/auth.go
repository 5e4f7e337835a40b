package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/middlewares"
	"github.com/ray-remotestate/bistro/utils"
	"github.com/sirupsen/logrus"
)

// IssueToken signs a session token for the posted identity and sets it as
// the "token" cookie. The identity comes from a login flow outside this
// service and is not checked here.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.Tokens.Issue(req.Email)
	if err != nil {
		logrus.WithError(err).Error("failed to sign token")
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, h.tokenCookie(token, int(h.Tokens.TTL().Seconds())))
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"status": true})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.tokenCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"status": true})
}

// tokenCookie is cross site (SameSite=None) when served over TLS. Browsers
// drop SameSite=None cookies without Secure, so plain HTTP falls back to Lax.
func (h *Handler) tokenCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteNoneMode
	if !h.CookieSecure {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     middlewares.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: sameSite,
	}
}

// CheckAdmin tells the caller whether they hold the Admin role.
func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !middlewares.RequireSameEmail(w, r, email) {
		return
	}

	isAdmin, err := middlewares.IsAdmin(r.Context(), h.Store, email)
	if err != nil {
		respondStoreError(w, err, "look up user role")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}
