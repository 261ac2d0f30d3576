package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// minBulletLen is the shortest enhanced line worth keeping. Anything shorter
// is usually a stray "1." or "Sure!" artifact.
const minBulletLen = 11

// Enhancer rewrites a slide's outline bullets into polished presentation
// copy via a second LLM pass. The original outline always survives as the
// fallback, so enhancement can never empty a slide.
type Enhancer struct {
	llm Completer
	log func(string)
}

// NewEnhancer creates a content enhancer.
func NewEnhancer(llm Completer, logFunc func(string)) *Enhancer {
	return &Enhancer{llm: llm, log: logFunc}
}

func (e *Enhancer) logf(format string, args ...interface{}) {
	if e.log != nil {
		e.log(fmt.Sprintf(format, args...))
	}
}

const enhancerSystem = "You are a presentation copywriter. Output only the bullet lines, one per line."

// Enhance returns the slide with its content replaced by up to 4 enhanced
// bullets. degraded is "" on success, otherwise the reason the original
// outline was kept.
func (e *Enhancer) Enhance(ctx context.Context, slide SlideSpec, res *AnalysisResult) (SlideSpec, string) {
	keep := slide.Content
	if len(keep) > maxBullets {
		keep = keep[:maxBullets]
	}

	summary := res.Summary
	if len(summary) > 300 {
		summary = summary[:300]
	}

	prompt := fmt.Sprintf(`Transform these outline points into compelling presentation content:

Slide Title: %s
Current Outline: %s

Context:
- Question: %s
- Summary: %s
- Slide Type: %s

Requirements:
- Each bullet point: 12-20 words maximum
- Use active voice and strong action verbs
- Include specific data insights where relevant
- No generic statements

Return exactly %d enhanced bullet points, one per line, no extra formatting.`,
		slide.Title, strings.Join(slide.Content, "; "), res.Question, summary, slide.Type, len(slide.Content))

	response, err := e.llm.Complete(ctx, enhancerSystem, prompt)
	if err != nil {
		e.logf("[ENHANCER] slide %d enhancement failed: %v, keeping outline", slide.SlideNo, err)
		slide.Content = keep
		return slide, fmt.Sprintf("enhancement failed: %v", err)
	}

	enhanced := CleanEnhancedLines(response)
	if len(enhanced) == 0 {
		e.logf("[ENHANCER] slide %d produced no usable lines, keeping outline", slide.SlideNo)
		slide.Content = keep
		return slide, "enhancement produced no usable lines"
	}

	if len(enhanced) > maxBullets {
		enhanced = enhanced[:maxBullets]
	}
	slide.Content = enhanced
	return slide, ""
}

var bulletPrefix = regexp.MustCompile(`^[•\-*►▪▫◦‣\d+.)\s]+`)

// CleanEnhancedLines strips bullet glyphs and numbering from each response
// line and drops lines too short to be real content.
func CleanEnhancedLines(response string) []string {
	var out []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if len(line) >= minBulletLen {
			out = append(out, line)
		}
	}
	return out
}
