package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medibook/models"

	"github.com/go-redis/redis/v8"
)

const (
	contextKeyPrefix  = "assistant:ctx:"
	defaultContextTTL = 30 * time.Minute
)

// ContextStore keeps the per-user conversation between requests.
type ContextStore interface {
	Get(ctx context.Context, userID string) (*models.AIContext, error)
	Set(ctx context.Context, userID string, aiCtx *models.AIContext) error
	Clear(ctx context.Context, userID string) error
}

// RedisContextStore expires a conversation after ttl without activity.
// Reads slide the expiry as well as writes.
type RedisContextStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisContextStore(client redis.Cmdable, ttl time.Duration) *RedisContextStore {
	if ttl <= 0 {
		ttl = defaultContextTTL
	}
	return &RedisContextStore{client: client, ttl: ttl}
}

func contextKey(userID string) string {
	return contextKeyPrefix + userID
}

// Get returns an empty context for a missing or unreadable entry. An
// unreadable entry is dropped so the next Set starts clean.
func (s *RedisContextStore) Get(ctx context.Context, userID string) (*models.AIContext, error) {
	key := contextKey(userID)
	data, err := s.client.GetEx(ctx, key, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.AIContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var aiCtx models.AIContext
	if err := json.Unmarshal(data, &aiCtx); err != nil {
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			return nil, delErr
		}
		return &models.AIContext{}, nil
	}
	return &aiCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, userID string, aiCtx *models.AIContext) error {
	b, err := json.Marshal(aiCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, contextKey(userID), b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, contextKey(userID)).Err()
}
