package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/database"
)

// setupTestDB connects to TEST_DATABASE_URL; the activity_drafts table must exist (go run ./cmd/migrate up)
func setupTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestDraftRepository_SaveLoadDiscard(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))
	ctx := context.Background()
	userID := "test-" + uuid.New().String()

	_, err := repo.Load(ctx, userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	draft := domain.NewActivityDraft()
	draft.Title = "週三晚間排球"
	draft.MaleQuota = domain.QuotaBarred

	first, err := repo.Save(ctx, userID, draft)
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)

	draft.Title = "週四晚間排球"
	second, err := repo.Save(ctx, userID, draft)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one draft per user")

	loaded, err := repo.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "週四晚間排球", loaded.Draft.Title)
	assert.Equal(t, domain.QuotaBarred, loaded.Draft.MaleQuota)
	assert.Equal(t, 120, loaded.Draft.Duration)

	require.NoError(t, repo.Discard(ctx, userID))
	require.NoError(t, repo.Discard(ctx, userID))
	_, err = repo.Load(ctx, userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
