package agent

import "strings"

// stripFences removes markdown code fences from LLM output, preferring an
// explicit ```json block when present.
func stripFences(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+7:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	}

	return strings.TrimSpace(content)
}

// ExtractJSONObject isolates the outermost JSON object in free-form LLM text:
// strip fences, then cut from the first "{" to the last "}". Returns "" when
// no object boundary exists; callers treat that the same as a parse failure.
func ExtractJSONObject(response string) string {
	content := stripFences(response)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return ""
	}
	return content[start : end+1]
}
