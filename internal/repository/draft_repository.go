package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/database"
)

// draftRepository stores create-form drafts in PostgreSQL
type draftRepository struct {
	db *database.PostgresDB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *database.PostgresDB) DraftRepository {
	return &draftRepository{
		db: db,
	}
}

// Save inserts or replaces the user's draft
func (r *draftRepository) Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO activity_drafts (id, user_id, draft, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			draft = EXCLUDED.draft,
			updated_at = EXCLUDED.updated_at
		RETURNING id::text, created_at, updated_at
	`

	saved := &domain.SavedDraft{UserID: userID, Draft: draft}
	err = r.db.Pool.QueryRow(ctx, query,
		uuid.New().String(),
		userID,
		payload,
		time.Now().UTC(),
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return saved, nil
}

// Load returns the user's draft
func (r *draftRepository) Load(ctx context.Context, userID string) (*domain.SavedDraft, error) {
	query := `
		SELECT id::text, draft, created_at, updated_at
		FROM activity_drafts
		WHERE user_id = $1
	`

	saved := &domain.SavedDraft{UserID: userID}
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&saved.ID,
		&payload,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	if err := json.Unmarshal(payload, &saved.Draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}

	return saved, nil
}

// Discard removes the user's draft
func (r *draftRepository) Discard(ctx context.Context, userID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM activity_drafts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	return nil
}
