package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SlideType is the closed set of slide variants. The deck builder dispatches
// exhaustively on it; LLM output is coerced onto the fixed template before
// anything downstream sees it.
type SlideType string

const (
	SlideTitle   SlideType = "title"
	SlideContent SlideType = "content"
	SlideChart   SlideType = "chart"
)

// SkeletonSize is the fixed deck length.
const SkeletonSize = 5

// SlideTemplate is the per-position slide type every skeleton follows:
// 1=title, 2=content, 3=chart, 4=chart, 5=content.
var SlideTemplate = [SkeletonSize]SlideType{SlideTitle, SlideContent, SlideChart, SlideChart, SlideContent}

// maxBullets caps a slide's bullet list.
const maxBullets = 4

// SlideSpec is one slide's structural plan: position, title, variant and
// outline bullets. Content is replaced in place by the enhancer later.
type SlideSpec struct {
	SlideNo int       `json:"slide_no"`
	Title   string    `json:"title"`
	Type    SlideType `json:"type"`
	Content []string  `json:"content"`
}

// Skeleton is the ordered 5-slide plan for a deck.
type Skeleton struct {
	Slides []SlideSpec `json:"slides"`
}

// Synthesizer asks the LLM for a deck outline and repairs the response onto
// the fixed template. It can always produce a skeleton: when the response is
// unusable, a static fallback derived from the analysis takes its place.
type Synthesizer struct {
	llm Completer
	log func(string)
}

// NewSynthesizer creates a skeleton synthesizer.
func NewSynthesizer(llm Completer, logFunc func(string)) *Synthesizer {
	return &Synthesizer{llm: llm, log: logFunc}
}

func (s *Synthesizer) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log(fmt.Sprintf(format, args...))
	}
}

const skeletonSystem = "You are a presentation designer. Output only valid JSON."

func skeletonPrompt(res *AnalysisResult, templateName string) string {
	summary := res.Summary
	if len(summary) > 400 {
		summary = summary[:400]
	}
	return fmt.Sprintf(`Create a professional 5-slide PowerPoint structure for this data analysis:

Question: %s
Summary: %s
Template: %s

Requirements:
- Create specific, engaging titles (not generic ones)
- Make bullet points actionable insights, not descriptions
- Keep bullet points to 12-18 words each
- Your response will be parsed directly, so return nothing but the JSON

Return ONLY this JSON structure:
{"slides": [
  {"slide_no": 1, "title": "Executive Summary: [Specific Topic]", "type": "title", "content": ["One compelling one-line insight about the data"]},
  {"slide_no": 2, "title": "Data Overview & Methodology", "type": "content", "content": ["Key dataset characteristic", "Analysis approach used", "Important data quality note"]},
  {"slide_no": 3, "title": "[Specific Finding Title]", "type": "chart", "content": ["Primary insight discovered", "Supporting evidence", "Business implication"]},
  {"slide_no": 4, "title": "[Specific Analysis Title]", "type": "chart", "content": ["Detailed finding", "Trend or pattern identified", "Recommendation"]},
  {"slide_no": 5, "title": "Strategic Recommendations", "type": "content", "content": ["Key takeaway", "Recommended action", "Next steps"]}
]}`, res.Question, summary, templateName)
}

// Synthesize produces the 5-slide skeleton. degraded is "" when the LLM
// response was usable, otherwise the reason the static fallback fired.
func (s *Synthesizer) Synthesize(ctx context.Context, res *AnalysisResult, templateName string) (Skeleton, string) {
	response, err := s.llm.Complete(ctx, skeletonSystem, skeletonPrompt(res, templateName))
	if err != nil {
		s.logf("[SKELETON] LLM call failed: %v, using fallback", err)
		return FallbackSkeleton(res), fmt.Sprintf("skeleton generation failed: %v", err)
	}

	skel, err := RepairSkeleton(response)
	if err != nil {
		s.logf("[SKELETON] response unusable: %v, using fallback", err)
		return FallbackSkeleton(res), fmt.Sprintf("skeleton response unusable: %v", err)
	}
	return skel, ""
}

// RepairSkeleton parses free-form LLM text into a skeleton and coerces it
// onto the fixed template: exactly 5 slides, template slide types, contiguous
// numbering, non-empty titles and 1-4 bullets per slide. An error means the
// response cannot be salvaged and the caller should use the fallback.
func RepairSkeleton(response string) (Skeleton, error) {
	payload := ExtractJSONObject(response)
	if payload == "" {
		return Skeleton{}, fmt.Errorf("no JSON object in response")
	}

	var skel Skeleton
	if err := json.Unmarshal([]byte(payload), &skel); err != nil {
		return Skeleton{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(skel.Slides) < SkeletonSize {
		return Skeleton{}, fmt.Errorf("expected %d slides, got %d", SkeletonSize, len(skel.Slides))
	}

	skel.Slides = skel.Slides[:SkeletonSize]
	defaults := defaultSlides("", "")
	for i := range skel.Slides {
		slide := &skel.Slides[i]
		slide.SlideNo = i + 1
		slide.Type = SlideTemplate[i]
		if strings.TrimSpace(slide.Title) == "" {
			slide.Title = defaults[i].Title
		}
		slide.Content = cleanBullets(slide.Content)
		if len(slide.Content) == 0 {
			slide.Content = defaults[i].Content
		}
	}
	return skel, nil
}

func cleanBullets(content []string) []string {
	var out []string
	for _, c := range content {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, c)
		if len(out) == maxBullets {
			break
		}
	}
	return out
}

// FallbackSkeleton is the deterministic skeleton used when the LLM response
// cannot be repaired. Titles and content derive from the question so the
// deck is never generic-empty.
func FallbackSkeleton(res *AnalysisResult) Skeleton {
	topic := strings.TrimSpace(res.Question)
	if r := []rune(topic); len(r) > 35 {
		topic = string(r[:35])
	}
	return Skeleton{Slides: defaultSlides(topic, res.Summary)}
}

func defaultSlides(topic, summary string) []SlideSpec {
	titleSlideTitle := "Executive Summary"
	if topic != "" {
		titleSlideTitle = "Executive Summary: " + topic
	}
	titleContent := "Key insights and findings from comprehensive data analysis"
	if summary != "" {
		titleContent = firstSentence(summary)
	}
	return []SlideSpec{
		{SlideNo: 1, Title: titleSlideTitle, Type: SlideTitle, Content: []string{titleContent}},
		{SlideNo: 2, Title: "Data Overview & Analysis Approach", Type: SlideContent, Content: []string{
			"Dataset scope and key characteristics",
			"Analytical methodology and tools applied",
			"Data quality assessment and validation",
		}},
		{SlideNo: 3, Title: "Primary Data Insights", Type: SlideChart, Content: []string{
			"Most significant patterns discovered in data",
			"Critical trends affecting business outcomes",
			"Key performance indicators and metrics",
		}},
		{SlideNo: 4, Title: "Detailed Analysis Results", Type: SlideChart, Content: []string{
			"In-depth examination of key variables",
			"Correlation and causation relationships found",
			"Predictive insights and future implications",
		}},
		{SlideNo: 5, Title: "Strategic Recommendations", Type: SlideContent, Content: []string{
			"Primary business recommendations based on data",
			"Immediate action items for implementation",
			"Long-term strategic opportunities identified",
		}},
	}
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, ".!?"); idx > 0 && idx < len(s)-1 {
		return s[:idx+1]
	}
	if r := []rune(s); len(r) > 120 {
		return string(r[:120])
	}
	return s
}
