package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StateStore is the durable key-value store behind the behavior engine:
// history, session and analytics snapshots live under independent keys.
// Values are opaque JSON strings owned by the callers.
type StateStore struct {
	client *redis.Client
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{
		client: client,
	}
}

// Get returns "" with a nil error for a missing key, so callers fall back to
// default state without treating absence as a failure.
func (s *StateStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to get %q from Redis: %w", key, err)
	}

	return val, nil
}

func (s *StateStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q in Redis: %w", key, err)
	}

	return nil
}
