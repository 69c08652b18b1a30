package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSector(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Anthropic builds large language model assistants", "LLM"},
		{"startup doing image recognition for retail", "Computer Vision"},
		{"humanoid robot manufacturer", "Robotics"},
		{"API platform for developer workflows", "Developer Tools"},
		{"medical diagnosis startup", "Healthcare AI"},
		{"GPU compute infrastructure", "AI Infrastructure"},
		{"B2B analytics for enterprise teams", "Enterprise AI"},
		{"a stealth startup", "AI"},
		{"", "AI"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferSector(tt.text), "text %q", tt.text)
	}
}

// Keyword groups are checked in order, so a text matching several groups
// classifies by the first.
func TestInferSector_OrderIsDeterministic(t *testing.T) {
	assert.Equal(t, "LLM", InferSector("an LLM platform for enterprise robotics"))
}
