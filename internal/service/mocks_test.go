package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pickup-bff/internal/domain"
)

type MockActivityBackend struct {
	mock.Mock
}

func (m *MockActivityBackend) GetActivity(ctx context.Context, session, id string) (*domain.Activity, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityBackend) GetParticipants(ctx context.Context, session, id string) ([]domain.Participant, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *MockActivityBackend) SearchActivities(ctx context.Context, session string, params domain.SearchParams) (*domain.ActivityPage, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityPage), args.Error(1)
}

func (m *MockActivityBackend) MyActivities(ctx context.Context, session string) ([]domain.Activity, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityBackend) UserActivities(ctx context.Context, session, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, session, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityBackend) CreateActivity(ctx context.Context, session string, req domain.ActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityBackend) UpdateActivity(ctx context.Context, session, id string, req domain.ActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, session, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityBackend) DeleteActivity(ctx context.Context, session, id string) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

func (m *MockActivityBackend) JoinActivity(ctx context.Context, session, id, position string) error {
	args := m.Called(ctx, session, id, position)
	return args.Error(0)
}

func (m *MockActivityBackend) LeaveActivity(ctx context.Context, session, id string) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

func (m *MockActivityBackend) ParticipantContacts(ctx context.Context, session, id string, userIDs []string) ([]domain.ParticipantContact, error) {
	args := m.Called(ctx, session, id, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipantContact), args.Error(1)
}

type MockUserBackend struct {
	mock.Mock
}

func (m *MockUserBackend) CurrentUser(ctx context.Context, session string) (*domain.User, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserBackend) UpdateUser(ctx context.Context, session, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, session, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserBackend) CheckNickname(ctx context.Context, session, nickname string) (bool, error) {
	args := m.Called(ctx, session, nickname)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserBackend) GetUser(ctx context.Context, session, userID string) (*domain.User, error) {
	args := m.Called(ctx, session, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserBackend) Logout(ctx context.Context, session string) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockNotificationBackend struct {
	mock.Mock
}

func (m *MockNotificationBackend) Notifications(ctx context.Context, session string) ([]domain.Notification, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationBackend) MarkNotificationRead(ctx context.Context, session, id string) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

func (m *MockNotificationBackend) MarkAllNotificationsRead(ctx context.Context, session string) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error) {
	args := m.Called(ctx, userID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedDraft), args.Error(1)
}

func (m *MockDraftStore) Load(ctx context.Context, userID string) (*domain.SavedDraft, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedDraft), args.Error(1)
}

func (m *MockDraftStore) Discard(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
