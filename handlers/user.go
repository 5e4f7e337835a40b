package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/middlewares"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/utils"
)

// Register stores a user the first time an email is seen. Roles cannot be
// set here; promotion goes through an admin's PATCH.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		PhotoURL string `json:"photoURL"`
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

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		CreatedAt: time.Now().UTC(),
	}
	result, err := h.Store.CreateUserIfAbsent(r.Context(), user)
	if errors.Is(err, database.ErrUserExists) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "This user already exists"})
		return
	}
	if err != nil {
		respondStoreError(w, err, "create user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, err, "list users")
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByID(r.Context(), mux.Vars(r)["id"])
	respondDocument(w, user, err, "get user")
}

// UpdateUser lets a user edit their own profile and an admin edit anyone's.
// Only admins may change a role.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorised Access")
		return
	}

	var update models.UserUpdate
	if err := utils.DecodeJSON(w, r, &update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.IsEmpty() {
		utils.RespondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	isAdmin, err := middlewares.IsAdmin(r.Context(), h.Store, claims.Email)
	if err != nil {
		respondStoreError(w, err, "look up user role")
		return
	}
	if !isAdmin && (claims.Email != email || update.Role != nil) {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return
	}

	result, err := h.Store.UpdateUserByEmail(r.Context(), email, update)
	if err != nil {
		respondStoreError(w, err, "update user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.Store.DeleteUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err, "delete user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
