package models

import (
	"time"

	"BubbleIndex/pkg/util"
)

// SeriesName identifies one of the scraped metrics.
type SeriesName string

const (
	SeriesPrice            SeriesName = "price"
	SeriesDifficulty       SeriesName = "difficulty"
	SeriesActiveAddresses  SeriesName = "active_addresses"
	SeriesTransactionValue SeriesName = "transaction_value"
	SeriesSearchTrend      SeriesName = "search_trend"
	SeriesSocialMentions   SeriesName = "social_mentions"
)

// AllSeries lists the inputs in the order they are fetched and parsed.
var AllSeries = []SeriesName{
	SeriesPrice,
	SeriesDifficulty,
	SeriesActiveAddresses,
	SeriesTransactionValue,
	SeriesSearchTrend,
	SeriesSocialMentions,
}

// Epoch is the earliest day kept in any series. The social-mentions gap fill starts here too.
var Epoch = time.Date(2010, 7, 17, 0, 0, 0, 0, time.UTC)

// DatedValue is one daily observation. Missing marks a literal null in the feed.
type DatedValue struct {
	Date    time.Time
	Value   float64
	Missing bool
}

// Float returns the value with missing coerced to 0.
func (v DatedValue) Float() float64 {
	if v.Missing {
		return 0
	}
	return v.Value
}

// Day is the "YYYY/MM/DD" form of the date.
func (v DatedValue) Day() string {
	return util.FormatDay(v.Date)
}

// Series is an ordered run of observations for one metric.
type Series struct {
	Name   SeriesName
	Points []DatedValue
}

func (s Series) Len() int { return len(s.Points) }

// Last returns the final observation; ok is false for an empty series.
func (s Series) Last() (DatedValue, bool) {
	if len(s.Points) == 0 {
		return DatedValue{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Concat returns a new series with other's points appended after s's.
func (s Series) Concat(other Series) Series {
	pts := make([]DatedValue, 0, len(s.Points)+len(other.Points))
	pts = append(pts, s.Points...)
	pts = append(pts, other.Points...)
	return Series{Name: s.Name, Points: pts}
}

// RawSeries is the unparsed text blob fetched for one metric.
type RawSeries struct {
	Name SeriesName
	Text string
}
