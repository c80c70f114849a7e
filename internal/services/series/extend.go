package series

import (
	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

// ExtendTail pads s to n points by repeating its last observation on the following days.
// Series already at or beyond n are returned unchanged.
func ExtendTail(s models.Series, n int) (models.Series, error) {
	if len(s.Points) >= n {
		return s, nil
	}
	last, ok := s.Last()
	if !ok {
		return models.Series{}, models.NewError(models.ErrAlignment, s.Name, -1, "cannot extend an empty series to %d points", n)
	}

	pts := make([]models.DatedValue, len(s.Points), n)
	copy(pts, s.Points)
	for len(pts) < n {
		last = models.DatedValue{Date: util.NextDay(last.Date), Value: last.Value, Missing: last.Missing}
		pts = append(pts, last)
	}
	return models.Series{Name: s.Name, Points: pts}, nil
}
