package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service stores whole rendered documents by key.
type Service interface {
	// Set stores value; a zero expiration keeps it until overwritten.
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Close() error
}
