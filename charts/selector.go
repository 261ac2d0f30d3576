package charts

import (
	"context"
	"fmt"
	"strings"

	"deckgen/agent"
	"deckgen/dataset"
)

// ChartType is the closed set of chart variants the pipeline renders.
type ChartType string

const (
	ChartBar ChartType = "bar"
	ChartPie ChartType = "pie"
)

// Selector decides which chart type fits a result table and question. Fixed
// per-slide rules take precedence over the LLM classifier.
type Selector struct {
	llm agent.Completer
	log func(string)
}

// NewSelector creates a chart type selector.
func NewSelector(llm agent.Completer, logFunc func(string)) *Selector {
	return &Selector{llm: llm, log: logFunc}
}

const selectorSystem = "You classify datasets for charting. Answer with a single word."

// Decide returns the chart type for a chart slide. The slide-3/slide-4
// overrides are a fixed design choice and win over whatever the classifier
// says; the classifier only runs when no override matches.
func (s *Selector) Decide(ctx context.Context, table *dataset.Table, question, outputPath string) ChartType {
	if forced, ok := Override(question, outputPath); ok {
		return forced
	}
	return s.classify(ctx, table, question)
}

// Override applies the fixed per-slide chart rules: slide 3 is always a pie
// chart, slide 4 always a bar chart.
func Override(question, outputPath string) (ChartType, bool) {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "slide 3") || strings.Contains(outputPath, "chart_3"):
		return ChartPie, true
	case strings.Contains(q, "slide 4") || strings.Contains(outputPath, "chart_4"):
		return ChartBar, true
	}
	return "", false
}

// classify asks the LLM to pick bar or pie; anything else, including a failed
// call, defaults to bar.
func (s *Selector) classify(ctx context.Context, table *dataset.Table, question string) ChartType {
	numeric, categorical := 0, 0
	for i := range table.Columns {
		if table.Numeric(i) {
			numeric++
		} else {
			categorical++
		}
	}

	cols := table.Columns
	if len(cols) > 5 {
		cols = cols[:5]
	}

	prompt := fmt.Sprintf(`Analyze this data and choose the BEST chart type:

Data Context:
- %d rows, %d columns
- %d numeric columns, %d categorical columns
- Sample columns: %s
- Question: %s

Chart Options (ONLY these two):
- bar: comparing categories/groups, showing values across different items
- pie: parts of whole, proportions (use only if <10 categories)

Return only: bar OR pie`,
		table.NumRows(), len(table.Columns), numeric, categorical, strings.Join(cols, ", "), question)

	response, err := s.llm.Complete(ctx, selectorSystem, prompt)
	if err != nil {
		if s.log != nil {
			s.log(fmt.Sprintf("[CHART] classification failed: %v, defaulting to bar", err))
		}
		return ChartBar
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "pie":
		return ChartPie
	default:
		return ChartBar
	}
}
