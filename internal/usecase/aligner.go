package usecase

import (
	"time"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

// AlignInput holds the preprocessed series handed to Align.
type AlignInput struct {
	Price            models.Series
	Difficulty       models.Series
	ActiveAddresses  models.Series
	TransactionValue models.Series
	SearchTrend      models.Series
	SocialMentions   models.Series
}

// Align joins the inputs by position on the price date axis.
// On-chain series must already be price length; interest series may be shorter
// but never longer. Every date must match the price date at the same index.
func Align(in AlignInput) (*models.AlignedFrame, error) {
	n := in.Price.Len()
	dates := make([]time.Time, n)
	for i, p := range in.Price.Points {
		dates[i] = p.Date
	}

	for _, s := range []models.Series{in.Difficulty, in.ActiveAddresses, in.TransactionValue} {
		if s.Len() != n {
			return nil, models.NewError(models.ErrAlignment, s.Name, -1, "has %d points, price has %d", s.Len(), n)
		}
	}
	for _, s := range []models.Series{in.SearchTrend, in.SocialMentions} {
		if s.Len() > n {
			return nil, models.NewError(models.ErrAlignment, s.Name, n, "has %d points, longer than price (%d)", s.Len(), n)
		}
	}

	for _, s := range []models.Series{in.SearchTrend, in.SocialMentions, in.Difficulty, in.ActiveAddresses, in.TransactionValue} {
		for i, p := range s.Points {
			if !p.Date.Equal(dates[i]) {
				return nil, models.NewError(models.ErrAlignment, s.Name, i,
					"date %s does not match price date %s", p.Day(), util.FormatDay(dates[i]))
			}
		}
	}

	return &models.AlignedFrame{
		Dates:            dates,
		Price:            in.Price.Points,
		Difficulty:       in.Difficulty.Points,
		ActiveAddresses:  in.ActiveAddresses.Points,
		TransactionValue: in.TransactionValue.Points,
		SearchTrend:      in.SearchTrend.Points,
		SocialMentions:   in.SocialMentions.Points,
	}, nil
}
