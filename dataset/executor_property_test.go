package dataset

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any LLM-generated query text, Execute always returns a usable table:
// non-nil, with the dataset's columns when the query had to be replaced by
// the first rows of the dataset.
func TestExecuteAlwaysYieldsUsableTable(t *testing.T) {
	exec := executorFixture(t, 12)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any query yields a non-empty table", prop.ForAll(
		func(query string) bool {
			out := exec.Execute(query)
			if out.Table == nil || len(out.Table.Columns) == 0 {
				return false
			}
			// A degraded outcome is capped at the 10-row fallback window.
			if out.Degraded != "" && out.Table.NumRows() > 10 {
				return false
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("write keywords always degrade", prop.ForAll(
		func(keyword string) bool {
			out := exec.Execute(keyword + " something FROM df")
			return out.Degraded != "" && out.Table.NumRows() == 10
		},
		gen.OneConstOf("INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE", "PRAGMA"),
	))

	properties.TestingRun(t)
}
