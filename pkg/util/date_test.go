package util

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2010/07/17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2010, 7, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if FormatDay(got) != "2010/07/17" {
		t.Fatalf("unexpected format %q", FormatDay(got))
	}
}

func TestParseDayInvalid(t *testing.T) {
	for _, s := range []string{"", "2010-07-17", "2010/13/01", "17/07/2010"} {
		if _, err := ParseDay(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestNextDayCrossesMonthAndLeapDay(t *testing.T) {
	if got := FormatDay(NextDay(MustParseDay("2012/02/28"))); got != "2012/02/29" {
		t.Fatalf("unexpected next day %s", got)
	}
	if got := FormatDay(NextDay(MustParseDay("2013/12/31"))); got != "2014/01/01" {
		t.Fatalf("unexpected next day %s", got)
	}
}

func TestIsWholeDay(t *testing.T) {
	if !IsWholeDay(MustParseDay("2014/04/09")) {
		t.Fatalf("expected whole day")
	}
	if IsWholeDay(MustParseDay("2014/04/09").Add(time.Hour)) {
		t.Fatalf("expected partial day")
	}
}

func TestDaysBetween(t *testing.T) {
	from := MustParseDay("2010/07/17")
	to := MustParseDay("2010/07/20")
	if d := DaysBetween(from, to); d != 3 {
		t.Fatalf("expected 3 got %d", d)
	}
	if d := DaysBetween(to, from); d != -3 {
		t.Fatalf("expected -3 got %d", d)
	}
}

func TestNextDayStaysOnUTCMidnight(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	day := MustParseDay("2011/03/12").In(ny)
	next := NextDay(day)
	if !IsWholeDay(next) || FormatDay(next) != "2011/03/13" {
		t.Fatalf("got %v want 2011/03/13 UTC midnight", next)
	}
	if got := NextDay(next); FormatDay(got) != "2011/03/14" || !IsWholeDay(got) {
		t.Fatalf("got %v want 2011/03/14 UTC midnight", got)
	}
}
