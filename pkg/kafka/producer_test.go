package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishWritesOneMessage(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, comp: "gzip"}
	if err := p.Publish(context.Background(), "bubble.index", []byte("latest"), []byte("data = '{}'")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || w.msgs[0].Topic != "bubble.index" || string(w.msgs[0].Key) != "latest" {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}
}

func TestPublishWrapsError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{writer: &fakeWriter{err: boom}, comp: "gzip"}
	if err := p.Publish(context.Background(), "t", nil, []byte("x")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestNewProducerBatchBytes(t *testing.T) {
	for _, tc := range []struct {
		opt  int
		want int64
	}{{2 << 20, 2 << 20}, {0, 16 << 20}} {
		p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithBatchBytes(tc.opt))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w, ok := p.writer.(*kafka.Writer)
		if !ok || w.BatchBytes != tc.want || w.BatchSize != 1 {
			t.Fatalf("batch bytes %d: got writer %+v", tc.opt, p.writer)
		}
		_ = p.Close()
	}
}

func TestParseCompression(t *testing.T) {
	if parseCompression("zstd") != kafka.Zstd || parseCompression("unknown") != kafka.Gzip {
		t.Fatalf("unexpected compression mapping")
	}
}
