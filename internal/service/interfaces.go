package service

import (
	"context"

	"pickup-bff/internal/domain"
)

// ActivityBackend is the part of the REST backend that owns activities and rosters
type ActivityBackend interface {
	GetActivity(ctx context.Context, session, id string) (*domain.Activity, error)
	GetParticipants(ctx context.Context, session, id string) ([]domain.Participant, error)
	SearchActivities(ctx context.Context, session string, params domain.SearchParams) (*domain.ActivityPage, error)
	MyActivities(ctx context.Context, session string) ([]domain.Activity, error)
	UserActivities(ctx context.Context, session, userID string) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, session string, req domain.ActivityRequest) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, session, id string, req domain.ActivityRequest) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, session, id string) error

	// JoinActivity and LeaveActivity run the seat transaction; the backend enforces quotas there
	JoinActivity(ctx context.Context, session, id, position string) error
	LeaveActivity(ctx context.Context, session, id string) error

	// ParticipantContacts is the captain's view of the roster; it carries phone numbers
	ParticipantContacts(ctx context.Context, session, id string, userIDs []string) ([]domain.ParticipantContact, error)
}

// UserBackend is the part of the REST backend that owns user profiles
type UserBackend interface {
	CurrentUser(ctx context.Context, session string) (*domain.User, error)
	UpdateUser(ctx context.Context, session, userID string, update domain.ProfileUpdate) (*domain.User, error)
	CheckNickname(ctx context.Context, session, nickname string) (bool, error)
	GetUser(ctx context.Context, session, userID string) (*domain.User, error)
	Logout(ctx context.Context, session string) error
}

// NotificationBackend is the part of the REST backend that owns the notification bell
type NotificationBackend interface {
	Notifications(ctx context.Context, session string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, session, id string) error
	MarkAllNotificationsRead(ctx context.Context, session string) error
}

// ActivityCache is the read-model cache in front of ActivityBackend
type ActivityCache interface {
	GetActivityAggregate(ctx context.Context, activityID string, fallback AggregateFallback) (*domain.Activity, []domain.Participant, error)
	InvalidateActivity(ctx context.Context, activityID string) error
	DropSession(ctx context.Context, session string)
}

// DraftStore persists unfinished create forms
type DraftStore interface {
	Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error)
	Load(ctx context.Context, userID string) (*domain.SavedDraft, error)
	Discard(ctx context.Context, userID string) error
}
