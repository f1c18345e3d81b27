package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/middleware"
	"pickup-bff/internal/service"
	"pickup-bff/pkg/logger"
)

// NotificationService is what the notification routes need from the service layer
type NotificationService interface {
	List(ctx context.Context, session string, viewer *domain.User) (*service.NotificationList, error)
	MarkRead(ctx context.Context, session string, viewer *domain.User, id string) error
	MarkAllRead(ctx context.Context, session string, viewer *domain.User) error
}

// NotificationHandler serves /api/notifications
type NotificationHandler struct {
	notifications NotificationService
	logger        *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.notifications.List(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// MarkRead handles PUT /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.notifications.MarkRead(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.notifications.MarkAllRead(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx)); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
