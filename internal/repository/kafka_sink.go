package repository

import (
	"context"
	"fmt"
	"sync"

	"BubbleIndex/internal/domain/models"
)

// Publisher is satisfied by pkg/kafka Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

// KafkaSink publishes each rendered document as a single message.
// Read returns the last document this process published.
type KafkaSink struct {
	pub   Publisher
	topic string
	key   []byte

	mu   sync.RWMutex
	last string
}

func NewKafkaSink(pub Publisher, topic, key string) *KafkaSink {
	if key == "" {
		key = "latest"
	}
	return &KafkaSink{pub: pub, topic: topic, key: []byte(key)}
}

func (s *KafkaSink) Write(ctx context.Context, doc string) error {
	if err := s.pub.Publish(ctx, s.topic, s.key, []byte(doc)); err != nil {
		return fmt.Errorf("kafka sink: %w", err)
	}
	s.mu.Lock()
	s.last = doc
	s.mu.Unlock()
	return nil
}

func (s *KafkaSink) Read(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == "" {
		return "", models.NewError(models.ErrDataUnavailable, "", -1, "nothing published to %s yet", s.topic)
	}
	return s.last, nil
}

func (s *KafkaSink) Close() error {
	return s.pub.Close()
}
