package series

import (
	"time"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

// GapFill synthesizes a compounding daily series over [start, end).
// The value grows before it is emitted, so the start day already carries init*(1+scale).
func GapFill(name models.SeriesName, start, end time.Time, init, scale float64) (models.Series, error) {
	if !util.IsWholeDay(start) || !util.IsWholeDay(end) {
		return models.Series{}, models.NewError(models.ErrPrecondition, name, -1,
			"gap fill bounds must be whole days: start=%s end=%s", start, end)
	}
	if end.Before(start) {
		return models.Series{}, models.NewError(models.ErrPrecondition, name, -1,
			"gap fill end %s is before start %s", util.FormatDay(end), util.FormatDay(start))
	}
	if init <= 0 {
		return models.Series{}, models.NewError(models.ErrPrecondition, name, -1, "gap fill init value must be > 0, got %v", init)
	}

	start, end = start.UTC(), end.UTC()
	n := util.DaysBetween(start, end)
	out := models.Series{Name: name, Points: make([]models.DatedValue, 0, n)}
	value := init
	day := start
	for i := 0; i < n; i++ {
		value += value * scale
		out.Points = append(out.Points, models.DatedValue{Date: day, Value: value})
		day = util.NextDay(day)
	}
	return out, nil
}
