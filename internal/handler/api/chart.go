package api

import (
	"io"

	"BubbleIndex/internal/domain/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// RenderChart writes a self-contained ECharts page for doc. Price goes on a log axis,
// the derived columns share the left axis.
func RenderChart(w io.Writer, doc *models.OutputDocument) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Bitcoin Bubble Index",
			Theme:     types.ThemeChalk,
			Width:     "100%",
			Height:    "720px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Bitcoin Bubble Index"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30px"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
		charts.WithYAxisOpts(opts.YAxis{Name: "index"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "price", Type: "log"})

	noSymbol := charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})
	price := make([]opts.LineData, doc.Len())
	for i, p := range doc.Price {
		price[i] = opts.LineData{Value: p.Float64()}
	}
	line.SetXAxis(doc.Date).
		AddSeries("bubble", intLine(doc.Bubble), noSymbol).
		AddSeries("hot", intLine(doc.Hot), noSymbol).
		AddSeries("growth_60_day", intLine(doc.Growth60Day), noSymbol).
		AddSeries("price", price, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), YAxisIndex: 1}))

	return line.Render(w)
}

func intLine(vals []int) []opts.LineData {
	out := make([]opts.LineData, len(vals))
	for i, v := range vals {
		out[i] = opts.LineData{Value: v}
	}
	return out
}
