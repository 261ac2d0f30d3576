package agent

import (
	"context"
	"strings"
	"testing"
)

// stubCompleter is a canned LLM used across the package tests.
type stubCompleter struct {
	resp string
	err  error
}

func (s stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return s.resp, s.err
}

func testResult() *AnalysisResult {
	return &AnalysisResult{
		Question: "Analyze quarterly sales by region",
		Summary:  "Sales grew 12% quarter over quarter. West leads all regions.",
	}
}

const goodSkeletonJSON = `{"slides": [
  {"slide_no": 1, "title": "Sales Momentum", "type": "title", "content": ["Growth accelerated across every region"]},
  {"slide_no": 2, "title": "Data & Method", "type": "content", "content": ["Four quarters of regional sales data", "SQL aggregation by region"]},
  {"slide_no": 3, "title": "Regional Share", "type": "chart", "content": ["West holds the largest share of revenue"]},
  {"slide_no": 4, "title": "Quarterly Trend", "type": "chart", "content": ["Growth is consistent across quarters"]},
  {"slide_no": 5, "title": "Recommendations", "type": "content", "content": ["Invest in the West region pipeline"]}
]}`

func assertTemplateShape(t *testing.T, skel Skeleton) {
	t.Helper()
	if len(skel.Slides) != SkeletonSize {
		t.Fatalf("got %d slides, want %d", len(skel.Slides), SkeletonSize)
	}
	for i, slide := range skel.Slides {
		if slide.SlideNo != i+1 {
			t.Errorf("slide %d has SlideNo %d", i, slide.SlideNo)
		}
		if slide.Type != SlideTemplate[i] {
			t.Errorf("slide %d has type %q, want %q", i+1, slide.Type, SlideTemplate[i])
		}
		if strings.TrimSpace(slide.Title) == "" {
			t.Errorf("slide %d has empty title", i+1)
		}
		if len(slide.Content) == 0 || len(slide.Content) > maxBullets {
			t.Errorf("slide %d has %d bullets", i+1, len(slide.Content))
		}
	}
}

func TestRepairSkeletonValidResponse(t *testing.T) {
	skel, err := RepairSkeleton(goodSkeletonJSON)
	if err != nil {
		t.Fatalf("RepairSkeleton failed: %v", err)
	}
	assertTemplateShape(t, skel)
	if skel.Slides[0].Title != "Sales Momentum" {
		t.Errorf("title = %q", skel.Slides[0].Title)
	}
}

func TestRepairSkeletonCoercesTypesAndNumbers(t *testing.T) {
	// Wrong slide numbers and types everywhere; the template wins.
	response := `{"slides": [
	  {"slide_no": 9, "title": "A", "type": "chart", "content": ["only bullet here"]},
	  {"slide_no": 9, "title": "B", "type": "title", "content": ["b1"]},
	  {"slide_no": 9, "title": "C", "type": "content", "content": ["c1"]},
	  {"slide_no": 9, "title": "D", "type": "content", "content": ["d1"]},
	  {"slide_no": 9, "title": "E", "type": "chart", "content": ["e1"]}
	]}`
	skel, err := RepairSkeleton(response)
	if err != nil {
		t.Fatalf("RepairSkeleton failed: %v", err)
	}
	assertTemplateShape(t, skel)
}

func TestRepairSkeletonTruncatesExtraSlides(t *testing.T) {
	response := `{"slides": [
	  {"title": "1", "content": ["a"]}, {"title": "2", "content": ["b"]},
	  {"title": "3", "content": ["c"]}, {"title": "4", "content": ["d"]},
	  {"title": "5", "content": ["e"]}, {"title": "6", "content": ["f"]},
	  {"title": "7", "content": ["g"]}
	]}`
	skel, err := RepairSkeleton(response)
	if err != nil {
		t.Fatalf("RepairSkeleton failed: %v", err)
	}
	if len(skel.Slides) != SkeletonSize {
		t.Fatalf("got %d slides, want %d", len(skel.Slides), SkeletonSize)
	}
}

func TestRepairSkeletonCapsBullets(t *testing.T) {
	response := `{"slides": [
	  {"title": "1", "content": ["a", "b", "c", "d", "e", "f"]},
	  {"title": "2", "content": ["a"]}, {"title": "3", "content": ["a"]},
	  {"title": "4", "content": ["a"]}, {"title": "5", "content": ["a"]}
	]}`
	skel, err := RepairSkeleton(response)
	if err != nil {
		t.Fatalf("RepairSkeleton failed: %v", err)
	}
	if len(skel.Slides[0].Content) != maxBullets {
		t.Errorf("bullets = %d, want %d", len(skel.Slides[0].Content), maxBullets)
	}
}

func TestRepairSkeletonFillsEmptyTitlesAndContent(t *testing.T) {
	response := `{"slides": [
	  {"title": "", "content": []}, {"title": "  ", "content": ["", " "]},
	  {"title": "x", "content": ["a"]}, {"title": "y", "content": ["a"]},
	  {"title": "z", "content": ["a"]}
	]}`
	skel, err := RepairSkeleton(response)
	if err != nil {
		t.Fatalf("RepairSkeleton failed: %v", err)
	}
	assertTemplateShape(t, skel)
}

func TestRepairSkeletonRejectsUnsalvageable(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "I cannot help with that."},
		{"invalid json", `{"slides": [}`},
		{"too few slides", `{"slides": [{"title": "only one", "content": ["a"]}]}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RepairSkeleton(tt.response); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestSynthesizeUsesLLMResponse(t *testing.T) {
	synth := NewSynthesizer(stubCompleter{resp: goodSkeletonJSON}, nil)
	skel, degraded := synth.Synthesize(context.Background(), testResult(), "default")
	if degraded != "" {
		t.Fatalf("unexpected degraded reason: %s", degraded)
	}
	assertTemplateShape(t, skel)
}

func TestSynthesizeFallsBackOnLLMError(t *testing.T) {
	synth := NewSynthesizer(stubCompleter{err: context.DeadlineExceeded}, nil)
	skel, degraded := synth.Synthesize(context.Background(), testResult(), "default")
	if degraded == "" {
		t.Fatal("expected a degraded reason")
	}
	assertTemplateShape(t, skel)
}

func TestSynthesizeFallsBackOnGarbage(t *testing.T) {
	synth := NewSynthesizer(stubCompleter{resp: "sorry, no JSON today"}, nil)
	skel, degraded := synth.Synthesize(context.Background(), testResult(), "default")
	if degraded == "" {
		t.Fatal("expected a degraded reason")
	}
	assertTemplateShape(t, skel)
}

func TestFallbackSkeletonTopicTruncation(t *testing.T) {
	long := strings.Repeat("sales analysis ", 10)
	skel := FallbackSkeleton(&AnalysisResult{Question: long})
	title := skel.Slides[0].Title
	if !strings.HasPrefix(title, "Executive Summary: ") {
		t.Fatalf("title = %q", title)
	}
	topic := strings.TrimPrefix(title, "Executive Summary: ")
	if len([]rune(topic)) > 35 {
		t.Errorf("topic %q longer than 35 runes", topic)
	}
}

func TestFallbackSkeletonUsesSummarySentence(t *testing.T) {
	skel := FallbackSkeleton(testResult())
	assertTemplateShape(t, skel)
	want := "Sales grew 12% quarter over quarter."
	if skel.Slides[0].Content[0] != want {
		t.Errorf("title content = %q, want %q", skel.Slides[0].Content[0], want)
	}
}
