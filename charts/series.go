package charts

import (
	"sort"
	"strconv"

	"deckgen/dataset"
)

const (
	// maxChartRows bounds how much of the result table a chart encodes.
	maxChartRows = 25
	// maxPieSlices caps pie chart categories.
	maxPieSlices = 8
	// maxLabelLen is where axis/category labels get truncated.
	maxLabelLen = 15
)

// Series is the label→value data a renderer draws. Values are all 1 when the
// source table had no numeric value column (equal-weight pie).
type Series struct {
	Labels []string
	Values []float64
}

// BarSeries prepares bar chart data: first column as labels, second as
// values, at most 25 rows. A single-column table gets positional labels.
func BarSeries(t *dataset.Table) Series {
	rows := t.NumRows()
	if rows > maxChartRows {
		rows = maxChartRows
	}

	s := Series{}
	labelCol, valueCol := 0, 1
	if len(t.Columns) < 2 {
		labelCol, valueCol = -1, 0
	}

	for i := 0; i < rows; i++ {
		label := ""
		if labelCol >= 0 {
			label = t.Cell(i, labelCol)
		}
		if label == "" {
			label = positionLabel(i)
		}
		s.Labels = append(s.Labels, TruncateLabel(label))
		if len(t.Columns) > valueCol && t.Numeric(valueCol) {
			s.Values = append(s.Values, t.Float(i, valueCol))
		} else {
			s.Values = append(s.Values, 1)
		}
	}
	return s
}

// PieSeries prepares pie chart data: when the second column is numeric, the
// 8 largest rows by value; otherwise the first 8 rows with equal weight.
func PieSeries(t *dataset.Table) Series {
	base := t.Head(maxChartRows)

	type entry struct {
		label string
		value float64
	}
	var entries []entry

	valueCol := 1
	if len(base.Columns) < 2 {
		valueCol = 0
	}
	numeric := len(base.Columns) > valueCol && base.Numeric(valueCol)

	for i := 0; i < base.NumRows(); i++ {
		label := base.Cell(i, 0)
		if label == "" {
			label = positionLabel(i)
		}
		value := 1.0
		if numeric {
			value = base.Float(i, valueCol)
		}
		entries = append(entries, entry{label: label, value: value})
	}

	if numeric {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	}
	if len(entries) > maxPieSlices {
		entries = entries[:maxPieSlices]
	}

	s := Series{}
	for _, e := range entries {
		s.Labels = append(s.Labels, TruncateLabel(e.label))
		s.Values = append(s.Values, e.value)
	}
	return s
}

// TruncateLabel shortens a label to 15 characters plus an ellipsis.
func TruncateLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxLabelLen {
		return label
	}
	return string(r[:maxLabelLen]) + "..."
}

func positionLabel(i int) string {
	return "#" + strconv.Itoa(i+1)
}
