package dto

import "pdfquiz/internal/domain"

// MCQResponse represents a multiple-choice question in the API response
type MCQResponse struct {
	Prompt  string            `json:"prompt"`
	Options map[string]string `json:"options"`
	Answer  string            `json:"answer"`
}

// TrueFalseResponse represents a true/false question in the API response
type TrueFalseResponse struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// FillInBlankResponse represents a fill-in-the-blank question in the API response
type FillInBlankResponse struct {
	Prompt  string     `json:"prompt"`
	Answers [][]string `json:"answers"`
}

// QuizResponse is the stateless-mode result: each kind trimmed to its
// target length.
// @Description Generated quiz, deduplicated and trimmed to targets
type QuizResponse struct {
	MCQ []MCQResponse         `json:"mcq"`
	TF  []TrueFalseResponse   `json:"tf"`
	FIB []FillInBlankResponse `json:"fib"`
}

// NextQuestionsResponse is the incremental-mode result: the full
// accumulated MCQ sequence for the session plus bookkeeping.
// @Description Accumulated session questions after this batch
type NextQuestionsResponse struct {
	SessionID  string        `json:"session_id"`
	Questions  []MCQResponse `json:"questions"`
	Added      int           `json:"added"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	StartPage  int           `json:"start_page"`
	EndPage    int           `json:"end_page"`
}

// ResetResponse acknowledges a session reset.
type ResetResponse struct {
	SessionID string `json:"session_id"`
	Reset     bool   `json:"reset"`
}

// FromQuestionSet maps a domain question set onto the response shape.
func FromQuestionSet(set domain.QuestionSet) *QuizResponse {
	resp := &QuizResponse{
		MCQ: make([]MCQResponse, 0, len(set.MCQ)),
		TF:  make([]TrueFalseResponse, 0, len(set.TF)),
		FIB: make([]FillInBlankResponse, 0, len(set.FIB)),
	}
	for _, q := range set.MCQ {
		resp.MCQ = append(resp.MCQ, MCQResponse(q))
	}
	for _, q := range set.TF {
		resp.TF = append(resp.TF, TrueFalseResponse(q))
	}
	for _, q := range set.FIB {
		resp.FIB = append(resp.FIB, FillInBlankResponse{Prompt: q.Prompt, Answers: q.Answers})
	}
	return resp
}

// FromMCQs maps accumulated MCQs onto the response shape.
func FromMCQs(questions []domain.MCQ) []MCQResponse {
	out := make([]MCQResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, MCQResponse(q))
	}
	return out
}
