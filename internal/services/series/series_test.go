package series

import (
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

func TestParseKeepsNullAndOrder(t *testing.T) {
	raw := `[[new Date("2010/07/17"),0.0495],[new Date("2010/07/18"),null],[new Date("2010/07/19"),5.25E-5]]`
	s, err := NewParser(models.Epoch).Parse(models.SeriesPrice, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points got %d", s.Len())
	}
	if s.Points[0].Day() != "2010/07/17" || s.Points[0].Value != 0.0495 {
		t.Fatalf("unexpected first point %+v", s.Points[0])
	}
	if !s.Points[1].Missing {
		t.Fatalf("null must survive parsing as missing")
	}
	if s.Points[2].Value != 5.25e-5 {
		t.Fatalf("scientific notation not parsed: %v", s.Points[2].Value)
	}
}

func TestParseAcceptsBareDateCall(t *testing.T) {
	raw := `[[Date("2011/01/01"),1],[Date("2011/01/02"),2]]`
	s, err := NewParser(models.Epoch).Parse(models.SeriesDifficulty, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 || s.Points[1].Value != 2 {
		t.Fatalf("unexpected series %+v", s)
	}
}

func TestParseDropsPreEpochPairs(t *testing.T) {
	raw := `[[new Date("2010/07/15"),1],[new Date("2010/07/16"),null],[new Date("2010/07/17"),3],[new Date("2010/07/18"),4]]`
	s, err := NewParser(models.Epoch).Parse(models.SeriesPrice, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4 pairs in, 2 before the epoch.
	if s.Len() != 2 {
		t.Fatalf("expected 2 points got %d", s.Len())
	}
	if s.Points[0].Day() != "2010/07/17" || s.Points[0].Value != 3 {
		t.Fatalf("date/value pairing broken: %+v", s.Points[0])
	}
}

func TestParseRejectsOddTokenCount(t *testing.T) {
	raw := `[[new Date("2010/07/17"),1],[new Date("2010/07/18")]`
	_, err := NewParser(models.Epoch).Parse(models.SeriesPrice, raw)
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	cases := []string{
		`[[new Date("2010/17/17"),1]]`,
		`[[new Date("2010/07/17"),abc]]`,
		`[[new Date("2010/07/17"),NaN]]`,
		`[[new Date("2010/07/18"),1],[new Date("2010/07/17"),2]]`,
		`[[new Date("2010/07/18"),1],[new Date("2010/07/18"),2]]`,
		`[`,
	}
	for _, raw := range cases {
		if _, err := NewParser(models.Epoch).Parse(models.SeriesPrice, raw); !errors.Is(err, models.ErrMalformedInput) {
			t.Fatalf("expected malformed input for %s, got %v", raw, err)
		}
	}
}

func TestParseEmptyList(t *testing.T) {
	s, err := NewParser(models.Epoch).Parse(models.SeriesPrice, "[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty series")
	}
}

func TestGapFillCompoundsBeforeEmit(t *testing.T) {
	s, err := GapFill(models.SeriesSocialMentions, util.MustParseDay("2010/07/17"), util.MustParseDay("2010/07/20"), 300, 0.002)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantDays := []string{"2010/07/17", "2010/07/18", "2010/07/19"}
	wantVals := []float64{300.6, 301.2012, 301.8036024}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points got %d", s.Len())
	}
	for i := range wantDays {
		if s.Points[i].Day() != wantDays[i] {
			t.Fatalf("point %d: day %s want %s", i, s.Points[i].Day(), wantDays[i])
		}
		if math.Abs(s.Points[i].Value-wantVals[i]) > 1e-9 {
			t.Fatalf("point %d: value %v want %v", i, s.Points[i].Value, wantVals[i])
		}
	}
}

func TestGapFillEmptyWhenStartEqualsEnd(t *testing.T) {
	day := util.MustParseDay("2014/04/09")
	s, err := GapFill(models.SeriesSocialMentions, day, day, 300, 0.002)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no points got %d", s.Len())
	}
}

func TestGapFillRejectsUnreachableEnd(t *testing.T) {
	start := util.MustParseDay("2014/04/09")
	if _, err := GapFill(models.SeriesSocialMentions, start, util.MustParseDay("2014/04/01"), 300, 0.002); !errors.Is(err, models.ErrPrecondition) {
		t.Fatalf("expected precondition error for end before start, got %v", err)
	}
	if _, err := GapFill(models.SeriesSocialMentions, start, util.MustParseDay("2014/04/10").Add(6*time.Hour), 300, 0.002); !errors.Is(err, models.ErrPrecondition) {
		t.Fatalf("expected precondition error for partial day, got %v", err)
	}
	if _, err := GapFill(models.SeriesSocialMentions, start, util.MustParseDay("2014/04/10"), 0, 0.002); !errors.Is(err, models.ErrPrecondition) {
		t.Fatalf("expected precondition error for zero init, got %v", err)
	}
}

func TestExtendTailHoldsLastValue(t *testing.T) {
	s := models.Series{Name: models.SeriesDifficulty, Points: []models.DatedValue{
		{Date: util.MustParseDay("2017/12/30"), Value: 1},
		{Date: util.MustParseDay("2017/12/31"), Value: 2},
		{Date: util.MustParseDay("2018/01/01"), Value: 3},
	}}
	out, err := ExtendTail(s, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 5 {
		t.Fatalf("expected 5 points got %d", out.Len())
	}
	if out.Points[3].Day() != "2018/01/02" || out.Points[4].Day() != "2018/01/03" {
		t.Fatalf("unexpected padded days %s %s", out.Points[3].Day(), out.Points[4].Day())
	}
	if out.Points[3].Value != 3 || out.Points[4].Value != 3 {
		t.Fatalf("padding must repeat the last value")
	}
	if s.Len() != 3 {
		t.Fatalf("input series must not be modified")
	}
}

func TestExtendTailNoopAndEmpty(t *testing.T) {
	s := models.Series{Name: models.SeriesDifficulty, Points: []models.DatedValue{{Date: models.Epoch, Value: 1}}}
	out, err := ExtendTail(s, 1)
	if err != nil || out.Len() != 1 {
		t.Fatalf("expected unchanged series, got %d %v", out.Len(), err)
	}
	if _, err := ExtendTail(models.Series{Name: models.SeriesDifficulty}, 2); !errors.Is(err, models.ErrAlignment) {
		t.Fatalf("expected alignment error for empty series, got %v", err)
	}
}

func TestGapFillAcrossDaylightSavingZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// UTC midnights expressed in a zone that springs forward on 2011/03/13.
	start := util.MustParseDay("2011/03/10").In(ny)
	end := util.MustParseDay("2011/03/16").In(ny)
	s, err := GapFill(models.SeriesSocialMentions, start, end, 300, 0.002)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2011/03/10", "2011/03/11", "2011/03/12", "2011/03/13", "2011/03/14", "2011/03/15"}
	if s.Len() != len(want) {
		t.Fatalf("expected %d points got %d", len(want), s.Len())
	}
	for i, d := range want {
		if s.Points[i].Day() != d || !util.IsWholeDay(s.Points[i].Date) {
			t.Fatalf("point %d: got %s want %s at midnight", i, s.Points[i].Date, d)
		}
	}
}
