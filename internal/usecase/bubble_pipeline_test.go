package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

// blob renders values as a charting feed starting at day offset from the epoch.
// "null" is passed through verbatim.
func blob(offset int, vals ...string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		day := util.FormatDay(models.Epoch.AddDate(0, 0, offset+i))
		parts[i] = fmt.Sprintf(`[new Date("%s"),%s]`, day, v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func testOptions() PipelineOptions {
	opts := DefaultPipelineOptions()
	opts.SocialGapEnd = models.Epoch.AddDate(0, 0, 2)
	return opts
}

func fixture() map[models.SeriesName]string {
	return map[models.SeriesName]string{
		models.SeriesPrice:            blob(0, "100", "110", "121", "90", "100"),
		models.SeriesDifficulty:       blob(0, "0", "0", "0"),
		models.SeriesActiveAddresses:  blob(0, "10", "10", "10", "10", "10"),
		models.SeriesTransactionValue: blob(0, "40", "40", "40", "40", "40"),
		models.SeriesSearchTrend:      blob(0, "1", "null", "2", "3"),
		models.SeriesSocialMentions:   blob(2, "16", "9"),
	}
}

type mapSource map[models.SeriesName]string

func (m mapSource) Fetch(_ context.Context, name models.SeriesName) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "not in fixture")
	}
	return v, nil
}

type recordingSink struct {
	docs []string
}

func (s *recordingSink) Write(_ context.Context, doc string) error {
	s.docs = append(s.docs, doc)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func TestComputeEndToEnd(t *testing.T) {
	p := NewBubblePipeline(nil, nil, nil, testOptions(), nil)
	doc, err := p.Compute(fixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Len() != 5 {
		t.Fatalf("expected 5 days got %d", doc.Len())
	}
	if doc.Date[0] != "2010/07/17" || doc.Date[4] != "2010/07/21" {
		t.Fatalf("unexpected dates %v", doc.Date)
	}

	wantGrowth := []int{0, 10, 20, -5, 5}
	// day 0/1 use the synthesized social values 300.6 and 301.2012, day 4 repeats day 3.
	wantHot := []int{23, 17, 16, 21, 21}
	for i := range wantGrowth {
		if doc.Growth60Day[i] != wantGrowth[i] {
			t.Fatalf("growth[%d] = %d want %d", i, doc.Growth60Day[i], wantGrowth[i])
		}
		if doc.Hot[i] != wantHot[i] {
			t.Fatalf("hot[%d] = %d want %d", i, doc.Hot[i], wantHot[i])
		}
		price := doc.Price[i].Float64()
		// difficulty held at 0 by tail extension, denominator = 10 + 0 + 40
		want := int(5000*price/50 + (float64(wantGrowth[i])*math.Pi+float64(wantHot[i])/math.Pi)/10 - 30)
		if doc.Bubble[i] != want {
			t.Fatalf("bubble[%d] = %d want %d", i, doc.Bubble[i], want)
		}
	}
	if doc.Price[3].String() != "90.00" {
		t.Fatalf("unexpected price %s", doc.Price[3])
	}
}

func TestComputeAlignmentError(t *testing.T) {
	raw := fixture()
	// trend starts one day late
	raw[models.SeriesSearchTrend] = blob(1, "1", "2", "3")
	_, err := NewBubblePipeline(nil, nil, nil, testOptions(), nil).Compute(raw)
	if !errors.Is(err, models.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}

func TestComputeRejectsLongerSeries(t *testing.T) {
	raw := fixture()
	raw[models.SeriesActiveAddresses] = blob(0, "10", "10", "10", "10", "10", "10")
	_, err := NewBubblePipeline(nil, nil, nil, testOptions(), nil).Compute(raw)
	if !errors.Is(err, models.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}

func TestComputeMalformedInput(t *testing.T) {
	raw := fixture()
	raw[models.SeriesDifficulty] = `[[new Date("2010/07/17"),1],[new Date("2010/07/18")]`
	_, err := NewBubblePipeline(nil, nil, nil, testOptions(), nil).Compute(raw)
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestComputeRejectsTrailingNullPrice(t *testing.T) {
	feeds := fixture()
	feeds[models.SeriesPrice] = blob(0, "100", "110", "121", "90", "null")
	p := NewBubblePipeline(nil, nil, nil, testOptions(), nil)
	doc, err := p.Compute(feeds)
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if doc != nil {
		t.Fatalf("no document may be produced, got %d days", doc.Len())
	}
	var pe *models.PipelineError
	if !errors.As(err, &pe) || pe.Series != models.SeriesPrice || pe.Index != 4 {
		t.Fatalf("expected price error at index 4, got %v", err)
	}
}

func TestComputeZeroDenominator(t *testing.T) {
	raw := fixture()
	raw[models.SeriesActiveAddresses] = blob(0, "0", "0", "0", "0", "0")
	raw[models.SeriesTransactionValue] = blob(0, "null", "0", "0", "0", "0")
	_, err := NewBubblePipeline(nil, nil, nil, testOptions(), nil).Compute(raw)
	if !errors.Is(err, models.ErrArithmetic) {
		t.Fatalf("expected arithmetic error, got %v", err)
	}
}

func TestComputeMissingSeries(t *testing.T) {
	raw := fixture()
	delete(raw, models.SeriesSocialMentions)
	_, err := NewBubblePipeline(nil, nil, nil, testOptions(), nil).Compute(raw)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
}

func TestRunWritesRenderedDocument(t *testing.T) {
	sink := &recordingSink{}
	p := NewBubblePipeline(mapSource(fixture()), sink, nil, testOptions(), nil)
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.docs) != 1 {
		t.Fatalf("expected one document written, got %d", len(sink.docs))
	}
	if !strings.HasPrefix(sink.docs[0], "data = '{\"date\":[\"2010/07/17\"") {
		t.Fatalf("unexpected rendered document %s", sink.docs[0])
	}
	if res.RunID == "" || res.Document.Len() != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunAbortsBeforeSinkOnFailure(t *testing.T) {
	raw := fixture()
	delete(raw, models.SeriesPrice)
	sink := &recordingSink{}
	_, err := NewBubblePipeline(mapSource(raw), sink, nil, testOptions(), nil).Run(context.Background())
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
	if len(sink.docs) != 0 {
		t.Fatalf("no document may be written on failure")
	}
}

func TestDefaultOptionsGapMatchesEpoch(t *testing.T) {
	opts := DefaultPipelineOptions()
	if !opts.SocialGapStart.Equal(opts.Epoch) {
		t.Fatalf("social gap fill must start at the epoch")
	}
	if util.DaysBetween(opts.SocialGapStart, opts.SocialGapEnd) != 1362 {
		t.Fatalf("unexpected gap length %d", util.DaysBetween(opts.SocialGapStart, opts.SocialGapEnd))
	}
}

