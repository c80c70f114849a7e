package cache

import (
	"testing"
	"time"
)

func TestRedisCacheKeyPrefix(t *testing.T) {
	if got := (&RedisCache{}).key("bubble:latest"); got != "bubble:latest" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := (&RedisCache{prefix: "prod"}).key("bubble:latest"); got != "prod:bubble:latest" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewRedisCacheFailsWithoutServer(t *testing.T) {
	_, err := NewRedisCache(WithRedisAddr("127.0.0.1:1"), WithRedisDialTimeout(200*time.Millisecond))
	if err == nil {
		t.Fatalf("expected ping error")
	}
}
