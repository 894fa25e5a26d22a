package quizgen

import (
	"fmt"
	"strings"
	"testing"

	"pdfquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildInstructions_EmbedsCountsAndPass(t *testing.T) {
	req := domain.PassRequest{
		Counts:      domain.Counts{MCQ: 15, TF: 10, FIB: 5},
		Label:       "PASS 2",
		TotalPasses: 2,
	}

	got := BuildInstructions(req, 80)

	assert.Contains(t, got, "This is PASS 2 of 2.")
	assert.Contains(t, got, "- MCQ: 15")
	assert.Contains(t, got, "- True/False: 10")
	assert.Contains(t, got, "- Fill-in-the-Blank: 5")
	assert.Contains(t, got, "Exactly 4 options A-D")
	assert.Contains(t, got, domain.BlankToken)
	assert.Contains(t, got, "No explanations.")
	assert.NotContains(t, got, "Do NOT reproduce")
}

func TestBuildInstructions_EmbedsSchema(t *testing.T) {
	req := domain.PassRequest{
		Counts:      domain.Counts{MCQ: 15, TF: 10, FIB: 5},
		Label:       "PASS 1",
		TotalPasses: 2,
	}

	got := BuildInstructions(req, 80)

	// The model only learns the contract from the instruction text, so
	// the serialized schema with its exact key names must be in there.
	for _, key := range []string{
		`"mcq"`, `"tf"`, `"fib"`,
		`"prompt"`, `"options"`, `"answer"`, `"answers"`,
		`"additionalProperties": false`,
	} {
		assert.Contains(t, got, key)
	}
}

func TestBuildInstructions_EmbedsAvoidList(t *testing.T) {
	req := domain.PassRequest{
		Counts:      domain.Counts{MCQ: 20},
		Label:       "PASS 1",
		TotalPasses: 1,
		Avoid:       []string{"What is Go?", "What is a channel?"},
	}

	got := BuildInstructions(req, 80)

	assert.Contains(t, got, "Do NOT reproduce")
	assert.Contains(t, got, "1. What is Go?")
	assert.Contains(t, got, "2. What is a channel?")
}

func TestFormatAvoidList_KeepsMostRecent(t *testing.T) {
	var prompts []string
	for i := 0; i < 100; i++ {
		prompts = append(prompts, fmt.Sprintf("question %d", i))
	}

	got := formatAvoidList(prompts, 80)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 80)
	// The oldest 20 are dropped; the window keeps the most recent.
	assert.Equal(t, "1. question 20", lines[0])
	assert.Equal(t, "80. question 99", lines[79])
}

func TestFormatAvoidList_Empty(t *testing.T) {
	assert.Equal(t, "", formatAvoidList(nil, 80))
}

func TestUnfence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unfence(tt.in))
		})
	}
}
