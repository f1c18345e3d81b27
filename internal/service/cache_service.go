package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/redis"
)

// CacheService is the cache-aside layer in front of the backend. A nil redis client turns
// every lookup into a miss, so the service runs without Redis.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// AggregateFallback loads an activity and its roster from the source of truth
type AggregateFallback func(ctx context.Context, activityID string) (*domain.Activity, []domain.Participant, error)

// GetActivityAggregate returns the activity and its roster, reading both keys in one round trip
func (c *CacheService) GetActivityAggregate(ctx context.Context, activityID string, fallback AggregateFallback) (*domain.Activity, []domain.Participant, error) {
	if c.redis != nil {
		activity, participants, ok := c.readAggregate(ctx, activityID)
		if ok {
			c.logger.Debug("Activity cache hit", zap.String("activity_id", activityID))
			return activity, participants, nil
		}
	}

	c.logger.Debug("Activity cache miss", zap.String("activity_id", activityID))
	activity, participants, err := fallback(ctx, activityID)
	if err != nil {
		return nil, nil, fmt.Errorf("backend fallback failed: %w", err)
	}

	c.storeAggregate(ctx, activityID, activity, participants)
	return activity, participants, nil
}

func (c *CacheService) readAggregate(ctx context.Context, activityID string) (*domain.Activity, []domain.Participant, bool) {
	kb := c.redis.KeyBuilder
	vals, err := c.redis.MGet(ctx, kb.KeyActivity(activityID), kb.KeyParticipants(activityID))
	if err != nil {
		c.logger.Warn("Activity cache error, falling back to backend",
			zap.String("activity_id", activityID),
			zap.Error(err))
		return nil, nil, false
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return nil, nil, false
	}

	activityData, okA := vals[0].(string)
	participantsData, okP := vals[1].(string)
	if !okA || !okP {
		return nil, nil, false
	}

	var activity domain.Activity
	var participants []domain.Participant
	if err := json.Unmarshal([]byte(activityData), &activity); err != nil {
		c.logger.Warn("Activity cache corrupted, falling back to backend",
			zap.String("activity_id", activityID),
			zap.Error(err))
		return nil, nil, false
	}
	if err := json.Unmarshal([]byte(participantsData), &participants); err != nil {
		c.logger.Warn("Roster cache corrupted, falling back to backend",
			zap.String("activity_id", activityID),
			zap.Error(err))
		return nil, nil, false
	}
	return &activity, participants, true
}

// storeAggregate writes both keys together; a failure is logged and otherwise ignored
func (c *CacheService) storeAggregate(ctx context.Context, activityID string, activity *domain.Activity, participants []domain.Participant) {
	if c.redis == nil || activity == nil {
		return
	}
	if participants == nil {
		participants = []domain.Participant{}
	}

	activityData, err := json.Marshal(activity)
	if err != nil {
		c.logger.Error("Failed to marshal activity for caching", zap.String("activity_id", activityID), zap.Error(err))
		return
	}
	participantsData, err := json.Marshal(participants)
	if err != nil {
		c.logger.Error("Failed to marshal roster for caching", zap.String("activity_id", activityID), zap.Error(err))
		return
	}

	kb := c.redis.KeyBuilder
	if err := c.redis.SetMultiple(ctx, map[string]interface{}{
		kb.KeyActivity(activityID):     string(activityData),
		kb.KeyParticipants(activityID): string(participantsData),
	}, redis.TTLParticipants); err != nil {
		c.logger.Error("Failed to cache activity", zap.String("activity_id", activityID), zap.Error(err))
		return
	}
	c.logger.Debug("Activity cached successfully", zap.String("activity_id", activityID))
}

// InvalidateActivity drops the cached activity and roster. Called before every post-join refetch.
func (c *CacheService) InvalidateActivity(ctx context.Context, activityID string) error {
	if c.redis == nil {
		return nil
	}
	keys := c.redis.KeyBuilder.KeyActivityAll(activityID)
	if err := c.redis.Delete(ctx, keys...); err != nil {
		c.logger.Error("Failed to invalidate activity cache",
			zap.String("activity_id", activityID),
			zap.Error(err))
		return err
	}
	c.logger.Debug("Activity cache invalidated", zap.String("activity_id", activityID))
	return nil
}

// GetSessionUser returns the user cached for a session cookie
func (c *CacheService) GetSessionUser(ctx context.Context, session string) (*domain.User, bool) {
	if c.redis == nil || session == "" {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeySession(sessionDigest(session)))
	if err != nil {
		if !redis.IsNil(err) {
			c.logger.Warn("Session cache error", zap.Error(err))
		}
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		c.logger.Warn("Session cache corrupted", zap.Error(err))
		return nil, false
	}
	return &user, true
}

// StoreSessionUser caches the user a session resolved to
func (c *CacheService) StoreSessionUser(ctx context.Context, session string, user *domain.User) {
	if c.redis == nil || session == "" || user == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		c.logger.Error("Failed to marshal session user", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, c.redis.KeyBuilder.KeySession(sessionDigest(session)), string(data), redis.TTLSession); err != nil {
		c.logger.Error("Failed to cache session user", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// DropSession forgets a session, e.g. after the backend answered 401 or the profile changed
func (c *CacheService) DropSession(ctx context.Context, session string) {
	if c.redis == nil || session == "" {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeySession(sessionDigest(session))); err != nil {
		c.logger.Error("Failed to drop session cache", zap.Error(err))
	}
}

// GetNicknameAvailability returns a recent availability answer
func (c *CacheService) GetNicknameAvailability(ctx context.Context, nickname string) (available, ok bool) {
	if c.redis == nil {
		return false, false
	}
	val, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyNickname(nickname))
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// StoreNicknameAvailability remembers an availability answer briefly
func (c *CacheService) StoreNicknameAvailability(ctx context.Context, nickname string, available bool) {
	if c.redis == nil {
		return
	}
	val := "0"
	if available {
		val = "1"
	}
	if err := c.redis.Set(ctx, c.redis.KeyBuilder.KeyNickname(nickname), val, redis.TTLNickname); err != nil {
		c.logger.Warn("Failed to cache nickname availability", zap.Error(err))
	}
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

// sessionDigest keeps raw session tokens out of Redis keys
func sessionDigest(session string) string {
	sum := sha256.Sum256([]byte(session))
	return hex.EncodeToString(sum[:])
}
