package indicators

import (
	"BubbleIndex/internal/domain/models"
)

// GrowthWindowDays is the number of daily changes summed into the growth figure.
const GrowthWindowDays = 60

// GrowthResult holds the per-day outputs derived from the price series.
type GrowthResult struct {
	Growth []int                   // int(sum of window * 100), truncated
	Price  []models.FormattedPrice // price rounded to 2 decimals
	Daily  []float64               // fractional change vs the previous day
}

// RollingGrowth sums the last `window` daily fractional price changes for every day.
// The first day compares against itself, so its change is 0. A null price is an error:
// only the hot and bubble formulas read missing values as 0.
func RollingGrowth(price []models.DatedValue, window int) (*GrowthResult, error) {
	res := &GrowthResult{
		Growth: make([]int, 0, len(price)),
		Price:  make([]models.FormattedPrice, 0, len(price)),
		Daily:  make([]float64, 0, len(price)),
	}
	if len(price) == 0 {
		return res, nil
	}

	w := NewSumWindow(window)
	last := price[0].Value
	for i, p := range price {
		if p.Missing {
			return nil, models.NewError(models.ErrMalformedInput, models.SeriesPrice, i,
				"price is null on %s", p.Day())
		}
		cur := p.Value
		if last == 0 {
			return nil, models.NewError(models.ErrArithmetic, models.SeriesPrice, i,
				"previous price is zero on %s", p.Day())
		}
		g := (cur - last) / last
		sum := w.Push(g)
		last = cur

		res.Daily = append(res.Daily, g)
		res.Growth = append(res.Growth, int(sum*100))
		res.Price = append(res.Price, models.NewFormattedPrice(cur))
	}
	return res, nil
}
