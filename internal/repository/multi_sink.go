package repository

import (
	"context"
	"errors"
	"fmt"

	"BubbleIndex/internal/domain/models"
	domrepo "BubbleIndex/internal/domain/repository"
)

// MultiSink fans one document out to every configured sink in order.
// The first failing sink aborts the write.
type MultiSink struct {
	sinks []domrepo.DocumentSink
}

func NewMultiSink(sinks ...domrepo.DocumentSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Write(ctx context.Context, doc string) error {
	if len(m.sinks) == 0 {
		return fmt.Errorf("no sinks configured")
	}
	for i, s := range m.sinks {
		if err := s.Write(ctx, doc); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}

// Read returns the document from the first sink that can serve one.
func (m *MultiSink) Read(ctx context.Context) (string, error) {
	var errs []error
	for _, s := range m.sinks {
		r, ok := s.(domrepo.DocumentReader)
		if !ok {
			continue
		}
		doc, err := r.Read(ctx)
		if err == nil {
			return doc, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", models.NewError(models.ErrDataUnavailable, "", -1, "no readable sink")
	}
	return "", errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Len() int { return len(m.sinks) }
