package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUser registers an account so submissions can be attributed and
// quota-tracked.
func (a *App) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		a.error(w, http.StatusBadRequest, "validation_failed", "email is required")
		return
	}

	user, err := a.Users.Create(r.Context(), &domain.User{Email: req.Email, Name: req.Name})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			a.error(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":              user.ID,
		"email":           user.Email,
		"name":            user.Name,
		"generatedImages": user.GeneratedImages,
		"createdAt":       user.CreatedAt,
	})
}

// UserUsage reports how much of the generation quota a user has consumed.
func (a *App) UserUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Str("user_id", id).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load user")
		return
	}

	remaining := a.Quota - user.GeneratedImages
	if remaining < 0 {
		remaining = 0
	}
	a.json(w, http.StatusOK, map[string]any{
		"userId":          user.ID,
		"generatedImages": user.GeneratedImages,
		"quota":           a.Quota,
		"remaining":       remaining,
		"canGenerate":     user.CanGenerate(a.Quota),
	})
}
