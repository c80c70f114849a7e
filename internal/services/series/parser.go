package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/pkg/util"
)

const nullToken = "null"

// Parser turns a charting-library data blob into a Series.
// Input looks like [[new Date("2010/07/17"),0.0495],[new Date("2010/07/18"),null]].
type Parser struct {
	epoch time.Time
}

// NewParser keeps points dated on or after epoch.
func NewParser(epoch time.Time) *Parser {
	return &Parser{epoch: epoch}
}

// Parse splits raw into alternating date/value tokens. Pairs before the epoch are dropped whole.
func (p *Parser) Parse(name models.SeriesName, raw string) (models.Series, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return models.Series{}, models.NewError(models.ErrMalformedInput, name, -1, "blob too short (%d bytes)", len(raw))
	}
	body := raw[1 : len(raw)-1]
	out := models.Series{Name: name}
	if strings.TrimSpace(body) == "" {
		return out, nil
	}

	tokens := strings.Split(body, ",")
	if len(tokens)%2 != 0 {
		return models.Series{}, models.NewError(models.ErrMalformedInput, name, -1, "odd token count %d: unpaired date/value", len(tokens))
	}

	out.Points = make([]models.DatedValue, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		pair := i / 2
		date, err := parseDateToken(tokens[i])
		if err != nil {
			return models.Series{}, models.NewError(models.ErrMalformedInput, name, pair, "bad date token %q", tokens[i]).WithCause(err)
		}
		val, missing, err := parseValueToken(tokens[i+1])
		if err != nil {
			return models.Series{}, models.NewError(models.ErrMalformedInput, name, pair, "bad value token %q", tokens[i+1]).WithCause(err)
		}
		if date.Before(p.epoch) {
			continue
		}
		if n := len(out.Points); n > 0 && !date.After(out.Points[n-1].Date) {
			return models.Series{}, models.NewError(models.ErrMalformedInput, name, pair,
				"date %s not after %s", util.FormatDay(date), out.Points[n-1].Day())
		}
		out.Points = append(out.Points, models.DatedValue{Date: date, Value: val, Missing: missing})
	}
	return out, nil
}

// parseDateToken strips the Date("...") call wrapper and the opening bracket of the pair.
func parseDateToken(tok string) (time.Time, error) {
	s := strings.TrimSpace(tok)
	s = strings.TrimLeft(s, "[ ")
	s = strings.TrimPrefix(s, "new ")
	s = strings.TrimPrefix(s, "Date(")
	s = strings.TrimSuffix(s, ")")
	s = strings.Trim(s, `"'`)
	return util.ParseDay(s)
}

// parseValueToken strips the closing bracket of the pair. "null" is kept as missing.
func parseValueToken(tok string) (float64, bool, error) {
	s := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(tok), "]"))
	if s == nullToken {
		return 0, true, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite value %q", s)
	}
	return v, false, nil
}
