package service

import (
	"context"
	stderrors "errors"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/repository"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// DraftService keeps one unfinished create form per user
type DraftService struct {
	store  DraftStore
	logger *logger.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(store DraftStore, logger *logger.Logger) *DraftService {
	return &DraftService{
		store:  store,
		logger: logger,
	}
}

// Save stores the draft as typed. Drafts are not validated; a district outside the chosen city is dropped.
func (s *DraftService) Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error) {
	draft.SetCity(draft.City)

	saved, err := s.store.Save(ctx, userID, draft)
	if err != nil {
		s.logger.WithField("user_id", userID).WithError(err).Error("Failed to save draft")
		return nil, errors.NewInternalError("儲存草稿失敗", err)
	}
	return saved, nil
}

// Load returns the saved draft, or a blank form with the defaults when there is none
func (s *DraftService) Load(ctx context.Context, userID string) (*domain.SavedDraft, error) {
	saved, err := s.store.Load(ctx, userID)
	if err != nil {
		if stderrors.Is(err, repository.ErrDraftNotFound) {
			return &domain.SavedDraft{UserID: userID, Draft: domain.NewActivityDraft()}, nil
		}
		s.logger.WithField("user_id", userID).WithError(err).Error("Failed to load draft")
		return nil, errors.NewInternalError("讀取草稿失敗", err)
	}
	return saved, nil
}

// Discard removes the saved draft
func (s *DraftService) Discard(ctx context.Context, userID string) error {
	if err := s.store.Discard(ctx, userID); err != nil {
		s.logger.WithField("user_id", userID).WithError(err).Error("Failed to discard draft")
		return errors.NewInternalError("刪除草稿失敗", err)
	}
	return nil
}
