package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultDocumentVar is the script variable the rendered document is assigned to.
const DefaultDocumentVar = "data"

// OutputDocument is the front-end payload: five parallel arrays of length N.
type OutputDocument struct {
	Date        []string         `json:"date"`
	Price       []FormattedPrice `json:"price"`
	Growth60Day []int            `json:"growth_60_day"`
	Hot         []int            `json:"hot"`
	Bubble      []int            `json:"bubble"`
}

// NewOutputDocument preallocates a document for n days.
func NewOutputDocument(n int) *OutputDocument {
	return &OutputDocument{
		Date:        make([]string, 0, n),
		Price:       make([]FormattedPrice, 0, n),
		Growth60Day: make([]int, 0, n),
		Hot:         make([]int, 0, n),
		Bubble:      make([]int, 0, n),
	}
}

// Len returns N.
func (d *OutputDocument) Len() int { return len(d.Date) }

// Validate checks the parallel-array invariant.
func (d *OutputDocument) Validate() error {
	n := len(d.Date)
	for name, l := range map[string]int{
		"price":         len(d.Price),
		"growth_60_day": len(d.Growth60Day),
		"hot":           len(d.Hot),
		"bubble":        len(d.Bubble),
	} {
		if l != n {
			return NewError(ErrAlignment, "", -1, "document column %s has %d rows, date has %d", name, l, n)
		}
	}
	return nil
}

// Render wraps the JSON document in `<varName> = '<json>'` for inclusion as a script.
func (d *OutputDocument) Render(varName string) (string, error) {
	if varName == "" {
		varName = DefaultDocumentVar
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return varName + " = '" + string(b) + "'", nil
}

// ParseRendered undoes Render.
func ParseRendered(s string) (*OutputDocument, error) {
	s = strings.TrimSpace(s)
	i, j := strings.Index(s, "'"), len(s)-1
	if i < 0 || j <= i || s[j] != '\'' {
		return nil, fmt.Errorf("rendered document: missing quoted payload")
	}
	var d OutputDocument
	if err := json.Unmarshal([]byte(s[i+1:j]), &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &d, nil
}

// Tail returns a document holding the last n rows; n <= 0 or n >= Len returns d itself.
func (d *OutputDocument) Tail(n int) *OutputDocument {
	if n <= 0 || n >= d.Len() {
		return d
	}
	k := d.Len() - n
	return &OutputDocument{
		Date:        d.Date[k:],
		Price:       d.Price[k:],
		Growth60Day: d.Growth60Day[k:],
		Hot:         d.Hot[k:],
		Bubble:      d.Bubble[k:],
	}
}

// Row is one day of the document, used by the summary table and the API.
type Row struct {
	Date        string         `json:"date"`
	Price       FormattedPrice `json:"price"`
	Growth60Day int            `json:"growth_60_day"`
	Hot         int            `json:"hot"`
	Bubble      int            `json:"bubble"`
}

// Rows transposes the columns. The document must be valid.
func (d *OutputDocument) Rows() []Row {
	out := make([]Row, d.Len())
	for i := range out {
		out[i] = Row{
			Date:        d.Date[i],
			Price:       d.Price[i],
			Growth60Day: d.Growth60Day[i],
			Hot:         d.Hot[i],
			Bubble:      d.Bubble[i],
		}
	}
	return out
}
