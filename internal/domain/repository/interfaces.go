package repository

import (
	"context"
	"time"

	"BubbleIndex/internal/domain/models"
)

// SeriesSource returns the raw charting blob for one metric.
// Failures must wrap models.ErrDataUnavailable.
type SeriesSource interface {
	Fetch(ctx context.Context, name models.SeriesName) (string, error)
}

// DocumentSink persists or displays the rendered document.
type DocumentSink interface {
	Write(ctx context.Context, doc string) error
	Close() error
}

// DocumentReader returns the last rendered document written by a sink.
type DocumentReader interface {
	Read(ctx context.Context) (string, error)
}

type Metrics interface {
	RecordSeriesPoints(series string, n int)
	RecordError(kind string)
	RecordRun(d time.Duration, days int)
	RecordLatest(bubble, hot, growth int)
}
