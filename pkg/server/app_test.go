package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/internal/repository"
	"BubbleIndex/internal/usecase"
	"BubbleIndex/pkg/config"
	applogger "BubbleIndex/pkg/logger"
	"BubbleIndex/pkg/metrics"
	"BubbleIndex/pkg/util"
)

func feed(offset int, vals ...string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf(`[new Date("%s"),%s]`, util.FormatDay(models.Epoch.AddDate(0, 0, offset+i)), v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func writeFeeds(t *testing.T, dir string, skip models.SeriesName) {
	t.Helper()
	feeds := map[models.SeriesName]string{
		models.SeriesPrice:            feed(0, "100", "110", "121", "90", "100"),
		models.SeriesDifficulty:       feed(0, "0", "0", "0"),
		models.SeriesActiveAddresses:  feed(0, "10", "10", "10", "10", "10"),
		models.SeriesTransactionValue: feed(0, "40", "40", "40", "40", "40"),
		models.SeriesSearchTrend:      feed(0, "1", "null", "2", "3"),
		models.SeriesSocialMentions:   feed(2, "16", "9"),
	}
	for name, body := range feeds {
		if name == skip {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, repository.DefaultFiles[name]), []byte(body), 0o644); err != nil {
			t.Fatalf("write feed: %v", err)
		}
	}
}

func newTestApp(t *testing.T, dir, out string) *App {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	opts := usecase.DefaultPipelineOptions()
	opts.SocialGapEnd = models.Epoch.AddDate(0, 0, 2)
	sink := repository.NewMultiSink(repository.NewFileSink(out))
	rec := metrics.New()
	p := usecase.NewBubblePipeline(repository.NewFileSource(dir, nil), sink, rec, opts, applogger.Nop())
	return New(cfg, applogger.Nop(), p, rec, nil)
}

func TestAppRunWritesDocumentAndSummary(t *testing.T) {
	dir := t.TempDir()
	writeFeeds(t, dir, "")
	out := filepath.Join(t.TempDir(), "data.json")

	app := newTestApp(t, dir, out)
	var buf bytes.Buffer
	app.SetOutput(&buf)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := models.ParseRendered(string(b))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if doc.Len() != 5 || doc.Date[4] != "2010/07/21" || doc.Price[1].String() != "110.00" {
		t.Fatalf("unexpected document %+v", doc)
	}
	summary := buf.String()
	if !strings.Contains(summary, "2010/07/21") || !strings.Contains(summary, "Bubble") {
		t.Fatalf("summary missing rows:\n%s", summary)
	}
}

func TestAppRunFailsWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	writeFeeds(t, dir, models.SeriesSearchTrend)
	out := filepath.Join(t.TempDir(), "data.json")

	app := newTestApp(t, dir, out)
	app.SetOutput(&bytes.Buffer{})
	err := app.Run(context.Background())
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("document must not be written on failure")
	}
}

func TestWriteSummaryLimitsRows(t *testing.T) {
	doc := models.NewOutputDocument(3)
	for i, d := range []string{"2020/01/01", "2020/01/02", "2020/01/03"} {
		doc.Date = append(doc.Date, d)
		doc.Price = append(doc.Price, models.NewFormattedPrice(1))
		doc.Growth60Day = append(doc.Growth60Day, i)
		doc.Hot = append(doc.Hot, i)
		doc.Bubble = append(doc.Bubble, i)
	}
	var buf bytes.Buffer
	WriteSummary(&buf, doc, 2)
	s := buf.String()
	if strings.Contains(s, "2020/01/01") || !strings.Contains(s, "2020/01/03") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
	if !strings.Contains(s, "last 2 of 3 days") {
		t.Fatalf("missing title:\n%s", s)
	}
}
