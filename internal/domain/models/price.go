package models

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormattedPrice is a price rounded to two decimals.
// The bubble index consumes this rounded value, so the rounding propagates into it.
type FormattedPrice struct {
	d decimal.Decimal
}

// NewFormattedPrice rounds v the way printf("%.2f") does: on the exact binary value.
func NewFormattedPrice(v float64) FormattedPrice {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 2, 64))
	if err != nil {
		// FormatFloat 'f' output for a finite value always parses.
		d = decimal.NewFromFloat(v).Round(2)
	}
	return FormattedPrice{d: d}
}

// ParseFormattedPrice reads a document price string back.
func ParseFormattedPrice(s string) (FormattedPrice, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return FormattedPrice{}, err
	}
	return FormattedPrice{d: d.Round(2)}, nil
}

// String always carries two decimals, e.g. "100.00".
func (p FormattedPrice) String() string { return p.d.StringFixed(2) }

// Float64 is the rounded price re-read as a float.
func (p FormattedPrice) Float64() float64 { return p.d.InexactFloat64() }

func (p FormattedPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *FormattedPrice) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFormattedPrice(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
