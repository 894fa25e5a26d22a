package domain

import "context"

// PassRequest describes one complete invocation of the external
// generation call. Ephemeral; never persisted.
type PassRequest struct {
	// Document is the raw PDF bytes sent to the model.
	Document []byte
	// Text, when non-empty, is page-range-scoped extracted text sent
	// instead of the raw document.
	Text string
	// Counts are the per-kind targets for this single pass.
	Counts Counts
	// Label identifies the pass in the instructions, e.g. "PASS 1".
	Label string
	// TotalPasses is the number of passes the request is split across.
	TotalPasses int
	// Avoid lists previously generated prompts the model is instructed
	// not to reproduce.
	Avoid []string
}

// QuizGenerator is the boundary to the external generative model.
// Implementations must treat each call as a single blocking, fallible
// operation and surface every failure as a GENERATION_FAILED
// DomainError; retry policy belongs to the caller.
type QuizGenerator interface {
	RunPass(ctx context.Context, req PassRequest) (*QuestionSet, error)
}
