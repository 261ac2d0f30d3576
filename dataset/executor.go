package dataset

import (
	"fmt"
	"regexp"
	"strings"
)

// fallbackRows is how much of the original dataset stands in for a failed
// query.
const fallbackRows = 10

// Outcome carries a query result together with the reason it was degraded,
// if any. Degraded == "" means the generated query ran as-is.
type Outcome struct {
	Table    *Table
	Degraded string
}

// Executor runs generated SQL against a Store. Anything that goes wrong —
// rejected statement, syntax error, missing column — degrades to the first
// ten rows of the dataset instead of failing the pipeline.
type Executor struct {
	store *Store
	log   func(string)
}

// NewExecutor creates an Executor bound to a loaded store.
func NewExecutor(store *Store, logFunc func(string)) *Executor {
	return &Executor{store: store, log: logFunc}
}

func (e *Executor) logf(format string, args ...interface{}) {
	if e.log != nil {
		e.log(fmt.Sprintf(format, args...))
	}
}

// Execute cleans and runs the generated query. The returned Outcome always
// holds a usable table.
func (e *Executor) Execute(rawQuery string) Outcome {
	query := CleanQuery(rawQuery)

	if err := ValidateQuery(query); err != nil {
		e.logf("[EXECUTOR] query rejected: %v, using fallback", err)
		return e.fallback(fmt.Sprintf("query rejected: %v", err))
	}

	table, err := e.store.Query(query)
	if err != nil {
		e.logf("[EXECUTOR] query failed: %v, using fallback", err)
		return e.fallback(fmt.Sprintf("query failed: %v", err))
	}
	if len(table.Columns) == 0 {
		e.logf("[EXECUTOR] query returned no columns, using fallback")
		return e.fallback("query returned no columns")
	}
	return Outcome{Table: table}
}

func (e *Executor) fallback(reason string) Outcome {
	table, err := e.store.Head(fallbackRows)
	if err != nil {
		// The store is an in-memory table we created ourselves; a failing
		// SELECT * here means the database is gone, not a bad query.
		table = &Table{Columns: e.store.Columns(), Types: e.store.Types()}
	}
	return Outcome{Table: table, Degraded: reason}
}

var (
	fenceOpen  = regexp.MustCompile("(?m)^```[a-zA-Z]*[ \t]*$")
	writeWords = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|REPLACE|ATTACH|DETACH|PRAGMA|VACUUM|REINDEX)\b`)
)

// CleanQuery strips markdown code fences and surrounding prose artifacts from
// an LLM-generated query.
func CleanQuery(raw string) string {
	q := strings.TrimSpace(raw)

	if idx := strings.Index(q, "```sql"); idx >= 0 {
		q = q[idx+6:]
		if end := strings.Index(q, "```"); end >= 0 {
			q = q[:end]
		}
	} else if idx := strings.Index(q, "```"); idx >= 0 {
		q = q[idx+3:]
		if end := strings.Index(q, "```"); end >= 0 {
			q = q[:end]
		}
	}
	q = fenceOpen.ReplaceAllString(q, "")
	q = strings.TrimSpace(q)
	q = strings.TrimSuffix(q, ";")
	return strings.TrimSpace(q)
}

// ValidateQuery enforces the read-only contract for generated SQL: a single
// SELECT (or WITH ... SELECT) statement, no write or DDL keywords. The LLM
// writes arbitrary text; this gate is what keeps it from writing arbitrary
// side effects.
func ValidateQuery(query string) error {
	if query == "" {
		return fmt.Errorf("empty query")
	}
	upper := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only SELECT statements are allowed")
	}
	if strings.Contains(query, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}
	if m := writeWords.FindString(query); m != "" {
		return fmt.Errorf("statement contains forbidden keyword %q", strings.ToUpper(m))
	}
	return nil
}
