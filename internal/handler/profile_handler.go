package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/middleware"
	"pickup-bff/internal/service/nickname"
	"pickup-bff/pkg/logger"
)

// ProfileService is what the profile routes need from the service layer
type ProfileService interface {
	Update(ctx context.Context, session string, viewer *domain.User, update domain.ProfileUpdate) (*domain.User, error)
	CheckNickname(ctx context.Context, session string, viewer *domain.User, value string) (nickname.Result, error)
	Profile(ctx context.Context, session, userID string) (*domain.User, error)
	Logout(ctx context.Context, session string)
}

// ProfileHandler serves /api/profile, public user pages and logout
type ProfileHandler struct {
	profiles   ProfileService
	cookieName string
	logger     *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles ProfileService, cookieName string, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:   profiles,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	ctx := r.Context()
	user, err := h.profiles.Update(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), update)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CheckNickname handles GET /api/profile/nickname?nickname=
func (h *ProfileHandler) CheckNickname(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.profiles.CheckNickname(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), r.URL.Query().Get("nickname"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Show handles GET /api/users/{id}
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := h.profiles.Profile(r.Context(), middleware.GetSession(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout. The cookie is cleared whatever the backend says.
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.profiles.Logout(r.Context(), middleware.GetSession(r.Context()))
	middleware.ClearSessionCookie(w, h.cookieName)
	w.WriteHeader(http.StatusNoContent)
}
