package domain

import "strings"

// Answer keys for multiple-choice questions.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// BlankToken is the placeholder a fill-in-the-blank prompt must contain
// once per blank.
const BlankToken = "__________"

// MCQ is a multiple-choice question with exactly four labeled options.
type MCQ struct {
	Prompt  string            `json:"prompt"`
	Options map[string]string `json:"options"`
	Answer  string            `json:"answer"`
}

// TrueFalse is a statement the learner judges as "True" or "False".
type TrueFalse struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// FillInBlank is a prompt with one BlankToken per blank. Answers holds
// one acceptable-variant set per blank, in left-to-right blank order.
type FillInBlank struct {
	Prompt  string     `json:"prompt"`
	Answers [][]string `json:"answers"`
}

// QuestionSet groups the three question kinds in generation order.
type QuestionSet struct {
	MCQ []MCQ         `json:"mcq"`
	TF  []TrueFalse   `json:"tf"`
	FIB []FillInBlank `json:"fib"`
}

// Counts holds per-kind target counts for a generation request.
type Counts struct {
	MCQ int
	TF  int
	FIB int
}

// Halve splits targets across two passes, rounding up so two half
// passes together always cover the full target.
func (c Counts) Halve() Counts {
	return Counts{
		MCQ: (c.MCQ + 1) / 2,
		TF:  (c.TF + 1) / 2,
		FIB: (c.FIB + 1) / 2,
	}
}

// Validate checks the structural shape of an ingested MCQ: non-empty
// prompt, all four options present, answer within the option domain.
func (q MCQ) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationFailure("mcq prompt is empty")
	}
	if len(q.Options) != 4 {
		return NewValidationFailure("mcq must have exactly 4 options")
	}
	for _, key := range []string{OptionA, OptionB, OptionC, OptionD} {
		if _, ok := q.Options[key]; !ok {
			return NewValidationFailure("mcq options must be labeled A-D")
		}
	}
	switch q.Answer {
	case OptionA, OptionB, OptionC, OptionD:
		return nil
	}
	return NewValidationFailure("mcq answer must be one of A-D")
}

// Validate checks the structural shape of an ingested true/false question.
func (q TrueFalse) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationFailure("tf prompt is empty")
	}
	if q.Answer != "True" && q.Answer != "False" {
		return NewValidationFailure(`tf answer must be "True" or "False"`)
	}
	return nil
}

// Validate checks the structural shape of an ingested fill-in-blank
// question: one placeholder per blank and one variant set per blank.
func (q FillInBlank) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationFailure("fib prompt is empty")
	}
	blanks := strings.Count(q.Prompt, BlankToken)
	if blanks == 0 {
		return NewValidationFailure("fib prompt must contain at least one blank placeholder")
	}
	if len(q.Answers) != blanks {
		return NewValidationFailure("fib must provide one answer set per blank")
	}
	for _, variants := range q.Answers {
		if len(variants) == 0 {
			return NewValidationFailure("fib answer set must not be empty")
		}
	}
	return nil
}

// NewValidationFailure wraps a structural defect in generated output.
// It is a GENERATION_FAILED condition, not user input error: the model,
// not the client, produced the malformed data.
func NewValidationFailure(message string) *DomainError {
	return NewError(CodeGenerationFailed, message, nil)
}
