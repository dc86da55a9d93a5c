package chat

import (
	"fmt"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-z_][a-z0-9_]*)\s*\}\}`)

// RenderPrompt substitutes {{step_id}} placeholders in a prompt with
// answers collected so far. Placeholders without a collected answer are
// left as-is.
func RenderPrompt(prompt string, answers map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(prompt, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := answers[key]; ok {
			return fmt.Sprint(value)
		}
		return match
	})
}
