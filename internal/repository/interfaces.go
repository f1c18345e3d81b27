package repository

import (
	"context"
	"errors"

	"pickup-bff/internal/domain"
)

// ErrDraftNotFound is returned when a user has no saved draft
var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository defines the interface for saved create-form drafts. Each user has at most one.
type DraftRepository interface {
	// Save inserts or replaces the user's draft
	Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error)

	// Load returns the user's draft or ErrDraftNotFound
	Load(ctx context.Context, userID string) (*domain.SavedDraft, error)

	// Discard removes the user's draft; removing a missing draft is not an error
	Discard(ctx context.Context, userID string) error
}
