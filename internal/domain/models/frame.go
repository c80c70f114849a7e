package models

import "time"

// AlignedFrame is the positional join of all inputs on the price date axis.
// Price and the on-chain columns have length N; the interest columns may be
// shorter (their tail is padded later by hold-last-value on the hot series)
// but share Dates[:M].
type AlignedFrame struct {
	Dates            []time.Time
	Price            []DatedValue
	Difficulty       []DatedValue
	ActiveAddresses  []DatedValue
	TransactionValue []DatedValue
	SearchTrend      []DatedValue
	SocialMentions   []DatedValue
}

// Len is N, the length of the price axis.
func (f *AlignedFrame) Len() int { return len(f.Dates) }

// InterestLen is the number of leading days where both interest series are present.
func (f *AlignedFrame) InterestLen() int {
	if len(f.SearchTrend) < len(f.SocialMentions) {
		return len(f.SearchTrend)
	}
	return len(f.SocialMentions)
}
