package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sundayts/portfolio/internal/newsletter/domain"
)

const subscribersKey = "portfolio:newsletter:subscribers" // hash: email -> RFC3339 signup time

// RedisStore keeps subscribers in a single redis hash.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed subscriber store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Add(ctx context.Context, sub domain.Subscriber) error {
	created, err := s.client.HSetNX(ctx, subscribersKey, sub.Email, sub.SubscribedAt.UTC().Format(time.RFC3339)).Result()
	if err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}
	if !created {
		return domain.ErrAlreadySubscribed
	}
	return nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.HLen(ctx, subscribersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return n, nil
}
