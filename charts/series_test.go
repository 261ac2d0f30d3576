package charts

import (
	"fmt"
	"strings"
	"testing"

	"deckgen/dataset"
)

func numericTable(rows int) *dataset.Table {
	t := &dataset.Table{
		Columns: []string{"category", "amount"},
		Types:   []string{"TEXT", "INTEGER"},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("cat%02d", i),
			fmt.Sprintf("%d", (i*37)%100+1),
		})
	}
	return t
}

func TestBarSeriesCapsRows(t *testing.T) {
	s := BarSeries(numericTable(40))
	if len(s.Values) != maxChartRows {
		t.Errorf("got %d bars, want %d", len(s.Values), maxChartRows)
	}
	if len(s.Labels) != len(s.Values) {
		t.Errorf("labels/values mismatch: %d vs %d", len(s.Labels), len(s.Values))
	}
}

func TestBarSeriesValues(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"name", "value"},
		Types:   []string{"TEXT", "REAL"},
		Rows:    [][]string{{"a", "1.5"}, {"b", "2.5"}},
	}
	s := BarSeries(table)
	if s.Values[0] != 1.5 || s.Values[1] != 2.5 {
		t.Errorf("values = %v", s.Values)
	}
	if s.Labels[0] != "a" || s.Labels[1] != "b" {
		t.Errorf("labels = %v", s.Labels)
	}
}

func TestBarSeriesNonNumericValueColumn(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"name", "note"},
		Types:   []string{"TEXT", "TEXT"},
		Rows:    [][]string{{"a", "x"}, {"b", "y"}},
	}
	s := BarSeries(table)
	for i, v := range s.Values {
		if v != 1 {
			t.Errorf("value %d = %v, want equal weight 1", i, v)
		}
	}
}

func TestBarSeriesSingleColumn(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"count"},
		Types:   []string{"INTEGER"},
		Rows:    [][]string{{"5"}, {"7"}},
	}
	s := BarSeries(table)
	if s.Labels[0] != "#1" || s.Labels[1] != "#2" {
		t.Errorf("labels = %v, want positional", s.Labels)
	}
	if s.Values[0] != 5 || s.Values[1] != 7 {
		t.Errorf("values = %v", s.Values)
	}
}

func TestPieSeriesCapsSlices(t *testing.T) {
	s := PieSeries(numericTable(20))
	if len(s.Values) != maxPieSlices {
		t.Fatalf("got %d slices, want %d", len(s.Values), maxPieSlices)
	}
	for i := 1; i < len(s.Values); i++ {
		if s.Values[i] > s.Values[i-1] {
			t.Errorf("slices not sorted descending: %v", s.Values)
		}
	}
}

func TestPieSeriesKeepsLargestValues(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"name", "value"},
		Types:   []string{"TEXT", "INTEGER"},
		Rows: [][]string{
			{"tiny", "1"}, {"huge", "900"}, {"mid", "50"},
		},
	}
	s := PieSeries(table)
	if s.Labels[0] != "huge" || s.Values[0] != 900 {
		t.Errorf("largest slice first, got %v %v", s.Labels, s.Values)
	}
}

func TestPieSeriesNonNumericEqualWeight(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"name", "note"},
		Types:   []string{"TEXT", "TEXT"},
		Rows: [][]string{
			{"a", "x"}, {"b", "y"}, {"c", "z"},
		},
	}
	s := PieSeries(table)
	if len(s.Values) != 3 {
		t.Fatalf("got %d slices", len(s.Values))
	}
	for _, v := range s.Values {
		if v != 1 {
			t.Errorf("values = %v, want equal weights", s.Values)
		}
	}
	// Equal-weight slices keep source order.
	if s.Labels[0] != "a" || s.Labels[2] != "c" {
		t.Errorf("labels = %v", s.Labels)
	}
}

func TestTruncateLabel(t *testing.T) {
	long := strings.Repeat("x", 30)
	got := TruncateLabel(long)
	if got != strings.Repeat("x", 15)+"..." {
		t.Errorf("TruncateLabel = %q", got)
	}
	if TruncateLabel("short") != "short" {
		t.Error("short labels should pass through")
	}
}

func TestTruncateTitle(t *testing.T) {
	long := strings.Repeat("t", 60)
	got := TruncateTitle(long)
	if got != strings.Repeat("t", 50)+"..." {
		t.Errorf("TruncateTitle = %q", got)
	}
}
