package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "local" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Activity read-model keys
func (kb *KeyBuilder) KeyActivity(activityID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivity, activityID))
}

func (kb *KeyBuilder) KeyParticipants(activityID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyParticipants, activityID))
}

// KeyActivityAll returns both keys of one activity, for invalidation
func (kb *KeyBuilder) KeyActivityAll(activityID string) []string {
	return []string{kb.KeyActivity(activityID), kb.KeyParticipants(activityID)}
}

// Session keys are built from a digest, never the raw token
func (kb *KeyBuilder) KeySession(sessionDigest string) string {
	return kb.BuildKey(fmt.Sprintf(KeySession, sessionDigest))
}

// Nickname availability keys
func (kb *KeyBuilder) KeyNickname(nickname string) string {
	return kb.BuildKey(fmt.Sprintf(KeyNickname, nickname))
}
