package agent

import (
	"context"
	"fmt"

	"deckgen/dataset"
)

// QueryPlanner turns a natural-language question into a SQL query string for
// the loaded dataset. It is purely generative: the response is returned as-is
// and the executor downstream owns cleanup, validation and fallback.
type QueryPlanner struct {
	llm Completer
	log func(string)
}

// NewQueryPlanner creates a planner over the given completer.
func NewQueryPlanner(llm Completer, logFunc func(string)) *QueryPlanner {
	return &QueryPlanner{llm: llm, log: logFunc}
}

const plannerSystem = "You are a SQL generation expert. Output only a single SQL query, no explanation."

// PlanQuery asks the LLM for one SQLite SELECT over the dataset table,
// grounding the request with the schema and a small row sample.
func (p *QueryPlanner) PlanQuery(ctx context.Context, question string, store *dataset.Store) (string, error) {
	sample, err := store.Head(3)
	if err != nil {
		return "", fmt.Errorf("failed to sample dataset: %w", err)
	}

	prompt := fmt.Sprintf(`Convert this question into a single SQLite SELECT query.
The dataset is loaded as a table named %q.

Columns: %s
Sample rows:
%s

Question: %s

Rules:
- Return only the SQL, nothing else.
- Query the %q table only, read-only SELECT.
- Prefer aggregation (GROUP BY) when the question compares categories.
Example: SELECT Region, SUM(Sales) AS total FROM %s GROUP BY Region ORDER BY total DESC`,
		dataset.TableName, sample.Schema(), sample.String(), question, dataset.TableName, dataset.TableName)

	if p.log != nil {
		p.log(fmt.Sprintf("[PLANNER] generating query for: %s", question))
	}
	return p.llm.Complete(ctx, plannerSystem, prompt)
}
