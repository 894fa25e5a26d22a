package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCQ_Validate(t *testing.T) {
	valid := MCQ{
		Prompt: "Which keyword starts a goroutine?",
		Options: map[string]string{
			OptionA: "go", OptionB: "run", OptionC: "async", OptionD: "spawn",
		},
		Answer: OptionA,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(q *MCQ)
	}{
		{"empty prompt", func(q *MCQ) { q.Prompt = "  " }},
		{"missing option", func(q *MCQ) { delete(q.Options, OptionD) }},
		{"extra option", func(q *MCQ) { q.Options["E"] = "extra"; delete(q.Options, OptionA) }},
		{"answer outside domain", func(q *MCQ) { q.Answer = "E" }},
		{"five options", func(q *MCQ) { q.Options["E"] = "extra" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := MCQ{
				Prompt:  valid.Prompt,
				Options: map[string]string{OptionA: "go", OptionB: "run", OptionC: "async", OptionD: "spawn"},
				Answer:  valid.Answer,
			}
			tt.mutate(&q)
			err := q.Validate()
			assert.Error(t, err)
			var domainErr *DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, CodeGenerationFailed, domainErr.Code)
		})
	}
}

func TestTrueFalse_Validate(t *testing.T) {
	assert.NoError(t, TrueFalse{Prompt: "Go has generics.", Answer: "True"}.Validate())
	assert.NoError(t, TrueFalse{Prompt: "Go has classes.", Answer: "False"}.Validate())

	assert.Error(t, TrueFalse{Prompt: "", Answer: "True"}.Validate())
	assert.Error(t, TrueFalse{Prompt: "x", Answer: "true"}.Validate())
	assert.Error(t, TrueFalse{Prompt: "x", Answer: "yes"}.Validate())
}

func TestFillInBlank_Validate(t *testing.T) {
	valid := FillInBlank{
		Prompt:  "The " + BlankToken + " keyword starts a goroutine.",
		Answers: [][]string{{"go"}},
	}
	assert.NoError(t, valid.Validate())

	twoBlanks := FillInBlank{
		Prompt:  BlankToken + " and " + BlankToken + " are Go builtins.",
		Answers: [][]string{{"make"}, {"new", "len"}},
	}
	assert.NoError(t, twoBlanks.Validate())

	assert.Error(t, FillInBlank{Prompt: "", Answers: [][]string{{"go"}}}.Validate(),
		"empty prompt")
	assert.Error(t, FillInBlank{Prompt: "no placeholder here", Answers: [][]string{{"go"}}}.Validate(),
		"missing placeholder")
	assert.Error(t, FillInBlank{Prompt: "one " + BlankToken, Answers: [][]string{{"a"}, {"b"}}}.Validate(),
		"answer sets must match blank count")
	assert.Error(t, FillInBlank{Prompt: "one " + BlankToken, Answers: [][]string{{}}}.Validate(),
		"empty variant set")
}

func TestCounts_Halve(t *testing.T) {
	half := Counts{MCQ: 30, TF: 20, FIB: 10}.Halve()
	assert.Equal(t, Counts{MCQ: 15, TF: 10, FIB: 5}, half)

	// Odd targets round up so two passes cover the full target.
	odd := Counts{MCQ: 31, TF: 1, FIB: 0}.Halve()
	assert.Equal(t, Counts{MCQ: 16, TF: 1, FIB: 0}, odd)
}
