package indicators

import (
	"math"

	"BubbleIndex/internal/domain/models"
)

// SearchTrendWeight scales the search-trend index against sqrt(social mentions).
const SearchTrendWeight = 6.27

// HotValue combines search interest and social volume: sqrt(social) + trend*6.27.
func HotValue(trend, social float64) (float64, error) {
	if social < 0 {
		return 0, models.NewError(models.ErrArithmetic, models.SeriesSocialMentions, -1, "negative social mentions %v", social)
	}
	return math.Sqrt(social) + trend*SearchTrendWeight, nil
}

// HotSeries computes int(hot) for every day both interest series cover, then
// repeats the last value up to n days. Missing values count as 0.
func HotSeries(trend, social []models.DatedValue, n int) ([]int, error) {
	m := len(trend)
	if len(social) < m {
		m = len(social)
	}
	if m > n {
		m = n
	}
	if m == 0 && n > 0 {
		return nil, models.NewError(models.ErrAlignment, models.SeriesSearchTrend, -1, "no interest data to cover %d days", n)
	}

	out := make([]int, 0, n)
	for i := 0; i < m; i++ {
		h, err := HotValue(trend[i].Float(), social[i].Float())
		if err != nil {
			return nil, models.NewError(models.ErrArithmetic, models.SeriesSocialMentions, i, "hot value on %s", social[i].Day()).WithCause(err)
		}
		out = append(out, int(h))
	}
	for len(out) < n {
		out = append(out, out[len(out)-1])
	}
	return out, nil
}
