package usecase

import (
	"context"
	"fmt"
	"time"

	"BubbleIndex/internal/domain/models"
	drepo "BubbleIndex/internal/domain/repository"
	"BubbleIndex/internal/services/indicators"
	"BubbleIndex/internal/services/series"
	applogger "BubbleIndex/pkg/logger"
	"BubbleIndex/pkg/util"

	"github.com/google/uuid"
)

// PipelineOptions are the tunable constants of a run.
type PipelineOptions struct {
	Epoch        time.Time
	GrowthWindow int
	DocumentVar  string

	// Social mentions start later than the other feeds; [SocialGapStart, SocialGapEnd) is synthesized.
	SocialGapStart time.Time
	SocialGapEnd   time.Time
	SocialGapInit  float64
	SocialGapScale float64
}

// DefaultPipelineOptions mirrors the published bubble index.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Epoch:          models.Epoch,
		GrowthWindow:   indicators.GrowthWindowDays,
		DocumentVar:    models.DefaultDocumentVar,
		SocialGapStart: models.Epoch,
		SocialGapEnd:   util.MustParseDay("2014/04/09"),
		SocialGapInit:  300,
		SocialGapScale: 0.002,
	}
}

// RunResult describes one completed run.
type RunResult struct {
	RunID    string
	Document *models.OutputDocument
	Rendered string
	Duration time.Duration
}

// BubblePipeline fetches the six feeds, computes the document and hands it to the sink.
type BubblePipeline struct {
	source  drepo.SeriesSource
	sink    drepo.DocumentSink
	metrics drepo.Metrics
	opts    PipelineOptions
	parser  *series.Parser
	l       *applogger.Logger
}

func NewBubblePipeline(
	source drepo.SeriesSource,
	sink drepo.DocumentSink,
	metrics drepo.Metrics,
	opts PipelineOptions,
	l *applogger.Logger,
) *BubblePipeline {
	if l == nil {
		l = applogger.Nop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &BubblePipeline{
		source:  source,
		sink:    sink,
		metrics: metrics,
		opts:    opts,
		parser:  series.NewParser(opts.Epoch),
		l:       l,
	}
}

// Run executes one full pass. Nothing reaches the sink unless every stage succeeds.
func (p *BubblePipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	l := p.l.With("run_id", runID)
	l.Info("bubble run started")

	raw, err := p.fetchAll(ctx, l)
	if err != nil {
		return nil, p.fail(l, err)
	}

	doc, err := p.Compute(raw)
	if err != nil {
		return nil, p.fail(l, err)
	}

	rendered, err := doc.Render(p.opts.DocumentVar)
	if err != nil {
		return nil, p.fail(l, err)
	}

	if err := p.sink.Write(ctx, rendered); err != nil {
		return nil, p.fail(l, fmt.Errorf("write document: %w", err))
	}

	res := &RunResult{RunID: runID, Document: doc, Rendered: rendered, Duration: time.Since(start)}
	if n := doc.Len(); n > 0 {
		p.metrics.RecordLatest(doc.Bubble[n-1], doc.Hot[n-1], doc.Growth60Day[n-1])
		l.Info("bubble run finished",
			applogger.Int("days", n),
			applogger.String("first", doc.Date[0]),
			applogger.String("last", doc.Date[n-1]),
			applogger.Int("bubble", doc.Bubble[n-1]),
			applogger.Float64("price", doc.Price[n-1].Float64()),
			applogger.Duration("duration_ms", res.Duration),
		)
	} else {
		l.Warn("bubble run produced an empty document")
	}
	p.metrics.RecordRun(res.Duration, doc.Len())
	return res, nil
}

func (p *BubblePipeline) fail(l *applogger.Logger, err error) error {
	p.metrics.RecordError(models.KindLabel(err))
	l.Error("bubble run failed", applogger.String("kind", models.KindLabel(err)), applogger.Error(err))
	return err
}

// fetchAll acquires every raw blob up front; the run aborts on the first unavailable feed.
func (p *BubblePipeline) fetchAll(ctx context.Context, l *applogger.Logger) (map[models.SeriesName]string, error) {
	raw := make(map[models.SeriesName]string, len(models.AllSeries))
	for _, name := range models.AllSeries {
		start := time.Now()
		text, err := p.source.Fetch(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		raw[name] = text
		l.Debug("series fetched",
			applogger.String("series", string(name)),
			applogger.Int("bytes", len(text)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return raw, nil
}

// Compute is the pure transform from raw blobs to the output document. It performs no I/O.
func (p *BubblePipeline) Compute(raw map[models.SeriesName]string) (*models.OutputDocument, error) {
	parsed := make(map[models.SeriesName]models.Series, len(models.AllSeries))
	for _, name := range models.AllSeries {
		text, ok := raw[name]
		if !ok {
			return nil, models.NewError(models.ErrDataUnavailable, name, -1, "no raw data")
		}
		s, err := p.parser.Parse(name, text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		parsed[name] = s
		p.metrics.RecordSeriesPoints(string(name), s.Len())
	}

	gap, err := series.GapFill(models.SeriesSocialMentions, p.opts.SocialGapStart, p.opts.SocialGapEnd, p.opts.SocialGapInit, p.opts.SocialGapScale)
	if err != nil {
		return nil, fmt.Errorf("social gap fill: %w", err)
	}
	social := gap.Concat(parsed[models.SeriesSocialMentions])

	price := parsed[models.SeriesPrice]
	growth, err := indicators.RollingGrowth(price.Points, p.opts.GrowthWindow)
	if err != nil {
		return nil, fmt.Errorf("rolling growth: %w", err)
	}

	n := price.Len()
	extended := make(map[models.SeriesName]models.Series, 3)
	for _, name := range []models.SeriesName{models.SeriesDifficulty, models.SeriesActiveAddresses, models.SeriesTransactionValue} {
		s, err := series.ExtendTail(parsed[name], n)
		if err != nil {
			return nil, fmt.Errorf("extend %s: %w", name, err)
		}
		if pad := s.Len() - parsed[name].Len(); pad > 0 {
			p.l.Debug("series padded with last value", applogger.String("series", string(name)), applogger.Int("days", pad))
		}
		extended[name] = s
	}

	frame, err := Align(AlignInput{
		Price:            price,
		Difficulty:       extended[models.SeriesDifficulty],
		ActiveAddresses:  extended[models.SeriesActiveAddresses],
		TransactionValue: extended[models.SeriesTransactionValue],
		SearchTrend:      parsed[models.SeriesSearchTrend],
		SocialMentions:   social,
	})
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	hot, err := indicators.HotSeries(frame.SearchTrend, frame.SocialMentions, n)
	if err != nil {
		return nil, fmt.Errorf("hot values: %w", err)
	}
	if m := frame.InterestLen(); m < n {
		p.l.Debug("hot value padded with last value", applogger.Int("days", n-m))
	}

	doc := models.NewOutputDocument(n)
	for i := 0; i < n; i++ {
		b, err := indicators.BubbleIndex(indicators.BubbleInput{
			Price:            growth.Price[i].Float64(),
			Growth60Day:      float64(growth.Growth[i]),
			Hot:              float64(hot[i]),
			Difficulty:       frame.Difficulty[i].Float(),
			ActiveAddresses:  frame.ActiveAddresses[i].Float(),
			TransactionValue: frame.TransactionValue[i].Float(),
		})
		if err != nil {
			return nil, fmt.Errorf("bubble index: %w",
				models.NewError(models.ErrArithmetic, models.SeriesPrice, i, "on %s", util.FormatDay(frame.Dates[i])).WithCause(err))
		}
		doc.Date = append(doc.Date, util.FormatDay(frame.Dates[i]))
		doc.Price = append(doc.Price, growth.Price[i])
		doc.Growth60Day = append(doc.Growth60Day, growth.Growth[i])
		doc.Hot = append(doc.Hot, hot[i])
		doc.Bubble = append(doc.Bubble, int(b))
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSeriesPoints(string, int) {}
func (nopMetrics) RecordError(string) {}
func (nopMetrics) RecordRun(time.Duration, int) {}
func (nopMetrics) RecordLatest(int, int, int) {}
