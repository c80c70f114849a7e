package indicators

import (
	"math"

	"BubbleIndex/internal/domain/models"
)

// BubbleInput is one day of the bubble formula inputs.
type BubbleInput struct {
	Price            float64 // 2-decimal formatted price
	Growth60Day      float64 // scaled integer growth
	Hot              float64 // integer hot value
	Difficulty       float64
	ActiveAddresses  float64
	TransactionValue float64
}

// BubbleIndex evaluates
//
//	5000*price/(active + difficulty/1e7 + tx) + (growth*pi + hot/pi)/10 - 30
func BubbleIndex(in BubbleInput) (float64, error) {
	denom := in.ActiveAddresses + in.Difficulty/1e7 + in.TransactionValue
	if denom == 0 {
		return 0, models.NewError(models.ErrArithmetic, "", -1, "bubble denominator is zero")
	}
	term0 := 5000 * in.Price / denom
	term1 := in.Growth60Day*math.Pi + in.Hot/math.Pi
	b := term0 + term1/10.0 - 30.0
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, models.NewError(models.ErrArithmetic, "", -1, "bubble index is not finite")
	}
	return b, nil
}
