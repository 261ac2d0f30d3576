package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"deckgen/agent"
	"deckgen/dataset"
)

// Renderer draws a prepared series to an image file. Primary and fallback
// backends share this contract.
type Renderer interface {
	Render(series Series, title string, typ ChartType, path string) error
}

// Generator owns the full chart step for one slide: decide the type, prepare
// the data subset, try the primary renderer and fall back to the raster
// backend. Only a double failure propagates.
type Generator struct {
	selector *Selector
	primary  Renderer
	fallback Renderer
	log      func(string)
}

// NewGenerator creates a Generator with the go-chart primary and raster
// fallback backends.
func NewGenerator(llm agent.Completer, logFunc func(string)) *Generator {
	return &Generator{
		selector: NewSelector(llm, logFunc),
		primary:  NewGoChartRenderer(),
		fallback: NewRasterRenderer(),
		log:      logFunc,
	}
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.log != nil {
		g.log(fmt.Sprintf(format, args...))
	}
}

// Generate renders a chart for the result table to path, returning the chart
// type that was drawn.
func (g *Generator) Generate(ctx context.Context, table *dataset.Table, question, path string) (ChartType, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create chart dir: %w", err)
	}

	typ := g.selector.Decide(ctx, table, question, path)

	var series Series
	if typ == ChartPie {
		series = PieSeries(table)
	} else {
		series = BarSeries(table)
	}

	if err := g.primary.Render(series, question, typ, path); err != nil {
		g.logf("[CHART] primary renderer failed: %v, trying fallback", err)
		if err := g.fallback.Render(series, question, typ, path); err != nil {
			return typ, fmt.Errorf("both chart renderers failed: %w", err)
		}
	}

	g.logf("[CHART] rendered %s chart: %s", typ, path)
	return typ, nil
}
