package usecase

import (
	"errors"
	"testing"

	"BubbleIndex/internal/domain/models"
)

func daily(name models.SeriesName, n int) models.Series {
	s := models.Series{Name: name, Points: make([]models.DatedValue, n)}
	for i := range s.Points {
		s.Points[i] = models.DatedValue{Date: models.Epoch.AddDate(0, 0, i), Value: float64(i + 1)}
	}
	return s
}

func alignInput(n int) AlignInput {
	return AlignInput{
		Price:            daily(models.SeriesPrice, n),
		Difficulty:       daily(models.SeriesDifficulty, n),
		ActiveAddresses:  daily(models.SeriesActiveAddresses, n),
		TransactionValue: daily(models.SeriesTransactionValue, n),
		SearchTrend:      daily(models.SeriesSearchTrend, n),
		SocialMentions:   daily(models.SeriesSocialMentions, n),
	}
}

func TestAlignEqualSeries(t *testing.T) {
	f, err := Align(alignInput(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Len() != 10 || f.InterestLen() != 10 {
		t.Fatalf("unexpected frame size %d/%d", f.Len(), f.InterestLen())
	}
}

func TestAlignDetectsMutatedDate(t *testing.T) {
	for _, mutate := range []func(*AlignInput) *models.Series{
		func(in *AlignInput) *models.Series { return &in.Difficulty },
		func(in *AlignInput) *models.Series { return &in.ActiveAddresses },
		func(in *AlignInput) *models.Series { return &in.TransactionValue },
		func(in *AlignInput) *models.Series { return &in.SearchTrend },
		func(in *AlignInput) *models.Series { return &in.SocialMentions },
	} {
		in := alignInput(10)
		s := mutate(&in)
		s.Points[7].Date = s.Points[7].Date.AddDate(0, 0, 1)
		_, err := Align(in)
		if !errors.Is(err, models.ErrAlignment) {
			t.Fatalf("%s: expected alignment error, got %v", s.Name, err)
		}
		var pe *models.PipelineError
		if !errors.As(err, &pe) || pe.Index != 7 {
			t.Fatalf("%s: expected index 7 in %v", s.Name, err)
		}
	}
}

func TestAlignShortInterestAllowed(t *testing.T) {
	in := alignInput(10)
	in.SearchTrend.Points = in.SearchTrend.Points[:6]
	f, err := Align(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.InterestLen() != 6 {
		t.Fatalf("expected interest length 6 got %d", f.InterestLen())
	}
}

func TestAlignShortOnChainRejected(t *testing.T) {
	in := alignInput(10)
	in.TransactionValue.Points = in.TransactionValue.Points[:9]
	if _, err := Align(in); !errors.Is(err, models.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}
