package service

import (
	"context"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// NotificationService forwards the notification bell to the backend
type NotificationService struct {
	backend NotificationBackend
	logger  *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(backend NotificationBackend, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		backend: backend,
		logger:  logger,
	}
}

// NotificationList is the bell's content together with its badge count
type NotificationList struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

// List returns the viewer's notifications
func (s *NotificationService) List(ctx context.Context, session string, viewer *domain.User) (*NotificationList, error) {
	if viewer == nil {
		return nil, errors.NewAuthenticationError(messageLoginRequired)
	}

	items, err := s.backend.Notifications(ctx, session)
	if err != nil {
		return nil, toAppError(err, "讀取通知失敗，請稍後再試")
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return &NotificationList{Items: items, Unread: domain.UnreadCount(items)}, nil
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, session string, viewer *domain.User, id string) error {
	if viewer == nil {
		return errors.NewAuthenticationError(messageLoginRequired)
	}
	if err := s.backend.MarkNotificationRead(ctx, session, id); err != nil {
		return toAppError(err, "更新通知失敗，請稍後再試")
	}
	return nil
}

// MarkAllRead marks every notification of the viewer as read
func (s *NotificationService) MarkAllRead(ctx context.Context, session string, viewer *domain.User) error {
	if viewer == nil {
		return errors.NewAuthenticationError(messageLoginRequired)
	}
	if err := s.backend.MarkAllNotificationsRead(ctx, session); err != nil {
		return toAppError(err, "更新通知失敗，請稍後再試")
	}

	s.logger.WithField("user_id", viewer.ID).Info("Notifications marked read")
	return nil
}
