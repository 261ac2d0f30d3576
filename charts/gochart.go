package charts

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 1200
	chartHeight = 700
)

// palette is the fixed 8-hue chart color cycle.
var palette = []string{
	"2E86AB", "A23B72", "F18F01", "C73E1D",
	"592E83", "1B998B", "ED217C", "F7931E",
}

// GoChartRenderer is the primary renderer, producing high-resolution PNGs
// via go-chart.
type GoChartRenderer struct{}

// NewGoChartRenderer creates the primary renderer.
func NewGoChartRenderer() *GoChartRenderer {
	return &GoChartRenderer{}
}

// Render draws the series as the given chart type and writes a PNG to path.
func (r *GoChartRenderer) Render(series Series, title string, typ ChartType, path string) error {
	if len(series.Values) == 0 {
		return fmt.Errorf("no data to chart")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	switch typ {
	case ChartPie:
		return r.renderPie(series, title, f)
	default:
		return r.renderBar(series, title, f)
	}
}

func (r *GoChartRenderer) renderBar(series Series, title string, f *os.File) error {
	bars := make([]chart.Value, len(series.Values))
	for i := range series.Values {
		color := drawing.ColorFromHex(palette[i%len(palette)])
		bars[i] = chart.Value{
			Label: series.Labels[i],
			Value: series.Values[i],
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := chart.BarChart{
		Title:    TruncateTitle(title),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidthFor(len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 40, Right: 40, Bottom: 40},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("bar chart render failed: %w", err)
	}
	return nil
}

func (r *GoChartRenderer) renderPie(series Series, title string, f *os.File) error {
	total := 0.0
	for _, v := range series.Values {
		total += v
	}
	if total <= 0 {
		return fmt.Errorf("pie chart needs positive values")
	}

	values := make([]chart.Value, len(series.Values))
	for i := range series.Values {
		color := drawing.ColorFromHex(palette[i%len(palette)])
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", series.Labels[i], series.Values[i]/total*100),
			Value: series.Values[i],
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := chart.PieChart{
		Title:  TruncateTitle(title),
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("pie chart render failed: %w", err)
	}
	return nil
}

func barWidthFor(n int) int {
	if n == 0 {
		return 60
	}
	w := (chartWidth - 100) / n
	if w > 80 {
		return 80
	}
	if w < 10 {
		return 10
	}
	return w
}

// TruncateTitle bounds chart titles to 50 characters plus an ellipsis.
func TruncateTitle(title string) string {
	r := []rune(title)
	if len(r) <= 50 {
		return title
	}
	return string(r[:50]) + "..."
}
