package repository

import (
	"context"
	"errors"
	"fmt"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/cache"
)

// DefaultRedisKey holds the latest document; each run overwrites it.
const DefaultRedisKey = "bubble:latest"

// RedisSink stores the rendered document under one key with no expiry.
type RedisSink struct {
	cache cache.Service
	key   string
}

func NewRedisSink(c cache.Service, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{cache: c, key: key}
}

func (s *RedisSink) Write(ctx context.Context, doc string) error {
	if err := s.cache.Set(ctx, s.key, doc, 0); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSink) Read(ctx context.Context) (string, error) {
	doc, err := s.cache.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", models.NewError(models.ErrDataUnavailable, "", -1, "no document under %s", s.key)
		}
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return doc, nil
}

func (s *RedisSink) Close() error {
	return s.cache.Close()
}
