package agent

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any LLM response, enhancing a slide that has bullets never leaves it
// empty: either the cleaned response or the original outline survives, capped
// at 4 bullets.
func TestEnhanceNeverEmptiesSlide(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	res := &AnalysisResult{Question: "q", Summary: "s."}

	properties.Property("non-empty content stays non-empty", prop.ForAll(
		func(response string, bullets []string) bool {
			content := make([]string, 0, len(bullets)+1)
			content = append(content, "Original outline bullet")
			content = append(content, bullets...)

			slide := SlideSpec{SlideNo: 2, Title: "T", Type: SlideContent, Content: content}
			e := NewEnhancer(stubCompleter{resp: response}, nil)
			out, _ := e.Enhance(context.Background(), slide, res)

			return len(out.Content) >= 1 && len(out.Content) <= maxBullets
		},
		gen.AnyString(),
		gen.SliceOfN(6, gen.AlphaString()),
	))

	properties.TestingRun(t)
}
