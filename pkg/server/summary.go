package server

import (
	"fmt"
	"io"

	"BubbleIndex/internal/domain/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary prints the last rows of doc as a table.
func WriteSummary(w io.Writer, doc *models.OutputDocument, last int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Bubble index, last %d of %d days", min(last, doc.Len()), doc.Len()))
	t.AppendHeader(table.Row{"Date", "Price", "Growth 60d", "Hot", "Bubble"})
	for _, r := range doc.Tail(last).Rows() {
		t.AppendRow(table.Row{r.Date, r.Price.String(), r.Growth60Day, r.Hot, r.Bubble})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}
