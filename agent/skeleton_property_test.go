package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any LLM response text, Synthesize always yields a well-formed deck:
// exactly 5 slides in template order with non-empty titles and 1-4 bullets,
// either repaired from the response or taken from the static fallback.
func TestSynthesizeAlwaysWellFormed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	res := &AnalysisResult{Question: "any question", Summary: "any summary."}

	properties.Property("any response yields a template-shaped skeleton", prop.ForAll(
		func(response string) bool {
			synth := NewSynthesizer(stubCompleter{resp: response}, nil)
			skel, _ := synth.Synthesize(context.Background(), res, "default")
			if len(skel.Slides) != SkeletonSize {
				return false
			}
			for i, slide := range skel.Slides {
				if slide.SlideNo != i+1 || slide.Type != SlideTemplate[i] {
					return false
				}
				if strings.TrimSpace(slide.Title) == "" {
					return false
				}
				if len(slide.Content) == 0 || len(slide.Content) > maxBullets {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
