package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/redis"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := redis.NewClient("redis://"+mr.Addr(), "development", zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, NewCacheService(client, zap.NewNop())
}

func countingFallback(calls *int, activity *domain.Activity, participants []domain.Participant, err error) AggregateFallback {
	return func(ctx context.Context, activityID string) (*domain.Activity, []domain.Participant, error) {
		*calls++
		return activity, participants, err
	}
}

func TestCacheService_GetActivityAggregate(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	activity := &domain.Activity{ID: "a1", Title: "週三晚間排球", MaxParticipants: 12}
	participants := []domain.Participant{{ID: "p1", UserID: "u1", IsCaptain: true}}

	calls := 0
	fallback := countingFallback(&calls, activity, participants, nil)

	gotA, gotP, err := cache.GetActivityAggregate(ctx, "a1", fallback)
	require.NoError(t, err)
	assert.Equal(t, "a1", gotA.ID)
	assert.Len(t, gotP, 1)
	assert.Equal(t, 1, calls)

	assert.True(t, mr.Exists("staging:activity:a1"))
	assert.True(t, mr.Exists("staging:activity:a1:participants"))
	assert.Equal(t, redis.TTLParticipants, mr.TTL("staging:activity:a1:participants"))

	gotA, gotP, err = cache.GetActivityAggregate(ctx, "a1", fallback)
	require.NoError(t, err)
	assert.Equal(t, "週三晚間排球", gotA.Title)
	assert.Equal(t, "u1", gotP[0].UserID)
	assert.Equal(t, 1, calls, "second read is served from cache")
}

func TestCacheService_PartialEntryIsAMiss(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("staging:activity:a1", `{"id":"a1"}`))

	calls := 0
	_, _, err := cache.GetActivityAggregate(ctx, "a1", countingFallback(&calls, &domain.Activity{ID: "a1"}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	got, err := mr.Get("staging:activity:a1:participants")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestCacheService_CorruptEntryFallsBack(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("staging:activity:a1", "not json"))
	require.NoError(t, mr.Set("staging:activity:a1:participants", "[]"))

	calls := 0
	got, _, err := cache.GetActivityAggregate(ctx, "a1", countingFallback(&calls, &domain.Activity{ID: "a1", Title: "fresh"}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Title)
	assert.Equal(t, 1, calls)
}

func TestCacheService_FallbackErrorIsNotCached(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	backendErr := errors.New("boom")
	calls := 0
	_, _, err := cache.GetActivityAggregate(ctx, "a1", countingFallback(&calls, nil, nil, backendErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	assert.False(t, mr.Exists("staging:activity:a1"))
}

func TestCacheService_InvalidateActivity(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	calls := 0
	_, _, err := cache.GetActivityAggregate(ctx, "a1", countingFallback(&calls, &domain.Activity{ID: "a1"}, nil, nil))
	require.NoError(t, err)

	require.NoError(t, cache.InvalidateActivity(ctx, "a1"))
	assert.False(t, mr.Exists("staging:activity:a1"))
	assert.False(t, mr.Exists("staging:activity:a1:participants"))

	_, _, err = cache.GetActivityAggregate(ctx, "a1", countingFallback(&calls, &domain.Activity{ID: "a1"}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheService_SessionUser(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	_, ok := cache.GetSessionUser(ctx, "token-1")
	assert.False(t, ok)

	cache.StoreSessionUser(ctx, "token-1", &domain.User{ID: "u1", Nickname: "小明"})
	user, ok := cache.GetSessionUser(ctx, "token-1")
	require.True(t, ok)
	assert.Equal(t, "小明", user.Nickname)

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "token-1", "raw session must not appear in keys")
	}

	mr.FastForward(redis.TTLSession + time.Second)
	_, ok = cache.GetSessionUser(ctx, "token-1")
	assert.False(t, ok)

	cache.StoreSessionUser(ctx, "token-1", &domain.User{ID: "u1"})
	cache.DropSession(ctx, "token-1")
	_, ok = cache.GetSessionUser(ctx, "token-1")
	assert.False(t, ok)
}

func TestCacheService_NicknameAvailability(t *testing.T) {
	_, cache := setupCache(t)
	ctx := context.Background()

	_, ok := cache.GetNicknameAvailability(ctx, "小明")
	assert.False(t, ok)

	cache.StoreNicknameAvailability(ctx, "小明", false)
	available, ok := cache.GetNicknameAvailability(ctx, "小明")
	assert.True(t, ok)
	assert.False(t, available)

	cache.StoreNicknameAvailability(ctx, "小華", true)
	available, ok = cache.GetNicknameAvailability(ctx, "小華")
	assert.True(t, ok)
	assert.True(t, available)
}

func TestCacheService_NilRedisPassesThrough(t *testing.T) {
	cache := NewCacheService(nil, zap.NewNop())
	ctx := context.Background()

	calls := 0
	fallback := countingFallback(&calls, &domain.Activity{ID: "a1"}, nil, nil)
	for i := 0; i < 2; i++ {
		_, _, err := cache.GetActivityAggregate(ctx, "a1", fallback)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)

	assert.NoError(t, cache.InvalidateActivity(ctx, "a1"))
	assert.NoError(t, cache.HealthCheck(ctx))
	cache.StoreSessionUser(ctx, "s", &domain.User{ID: "u1"})
	_, ok := cache.GetSessionUser(ctx, "s")
	assert.False(t, ok)
}
