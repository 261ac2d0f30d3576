package agent

import (
	"context"
	"fmt"

	"deckgen/dataset"
)

// AnalysisResult is the one-shot product of running a question against the
// dataset: the generated query, its (possibly degraded) result table and a
// natural-language summary. Every downstream stage consumes it read-only.
type AnalysisResult struct {
	Question string
	Query    string
	Table    *dataset.Table
	Summary  string

	// Degradation reasons, "" when the stage succeeded as generated.
	QueryDegraded   string
	SummaryDegraded string
}

// Analyzer wires the query planner, executor and summarizer into the single
// analysis pass at the head of the pipeline.
type Analyzer struct {
	llm     Completer
	store   *dataset.Store
	planner *QueryPlanner
	exec    *dataset.Executor
	log     func(string)
}

// NewAnalyzer creates an Analyzer over a loaded store.
func NewAnalyzer(llm Completer, store *dataset.Store, logFunc func(string)) *Analyzer {
	return &Analyzer{
		llm:     llm,
		store:   store,
		planner: NewQueryPlanner(llm, logFunc),
		exec:    dataset.NewExecutor(store, logFunc),
		log:     logFunc,
	}
}

func (a *Analyzer) logf(format string, args ...interface{}) {
	if a.log != nil {
		a.log(fmt.Sprintf(format, args...))
	}
}

const summarySystem = "You are a factual data analyst. Answer concisely."

// Analyze runs question → query → result → summary. It always returns a
// usable result; collaborator failures degrade individual fields and are
// recorded on the result.
func (a *Analyzer) Analyze(ctx context.Context, question string) *AnalysisResult {
	res := &AnalysisResult{Question: question}

	query, err := a.planner.PlanQuery(ctx, question, a.store)
	if err != nil {
		a.logf("[ANALYZER] query planning failed: %v, using fallback", err)
		res.QueryDegraded = fmt.Sprintf("query planning failed: %v", err)
	}
	res.Query = dataset.CleanQuery(query)
	a.logf("[ANALYZER] generated query: %s", res.Query)

	outcome := a.exec.Execute(query)
	res.Table = outcome.Table
	if outcome.Degraded != "" && res.QueryDegraded == "" {
		res.QueryDegraded = outcome.Degraded
	}

	res.Summary = a.summarize(ctx, res)
	return res
}

// summarize asks for a 2-3 sentence summary of the result table, with a
// deterministic sentence as the fallback so the summary is never empty.
func (a *Analyzer) summarize(ctx context.Context, res *AnalysisResult) string {
	prompt := fmt.Sprintf(`Based on this data analysis result, provide a brief summary.

Question: %s
Result:
%s

Provide a 2-3 sentence summary of what this data shows.`,
		res.Question, res.Table.Head(25).String())

	summary, err := a.llm.Complete(ctx, summarySystem, prompt)
	if err != nil || len(summary) == 0 {
		a.logf("[ANALYZER] summary generation failed: %v, using fallback", err)
		res.SummaryDegraded = fmt.Sprintf("summary generation failed: %v", err)
		return fmt.Sprintf("The analysis for %q returned %d rows across %d columns (%s).",
			res.Question, res.Table.NumRows(), len(res.Table.Columns), res.Table.Schema())
	}
	return summary
}
