package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrompt(t *testing.T) {
	answers := map[string]any{
		"name": "Alice",
		"age":  int64(30),
	}

	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"no placeholders", "How old are you?", "How old are you?"},
		{"substitutes answer", "Hi {{name}}!", "Hi Alice!"},
		{"tolerates spaces", "Hi {{ name }}!", "Hi Alice!"},
		{"non-string answer", "You said {{age}}.", "You said 30."},
		{"several placeholders", "{{name}} is {{age}}", "Alice is 30"},
		{"unknown placeholder kept", "Hi {{nickname}}!", "Hi {{nickname}}!"},
		{"malformed braces kept", "Hi {name}!", "Hi {name}!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPrompt(tt.prompt, answers))
		})
	}
}

func TestRenderPromptNilAnswers(t *testing.T) {
	assert.Equal(t, "Hi {{name}}!", RenderPrompt("Hi {{name}}!", nil))
}
