package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// GeminiGenerator implements domain.QuizGenerator against Gemini via
// langchaingo. Each RunPass is an independent blocking call; the
// generator holds no mutable state and is safe for concurrent use.
type GeminiGenerator struct {
	client      *googleai.GoogleAI
	callTimeout time.Duration
	avoidCap    int
}

// NewGeminiGenerator creates a generator bound to the given model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, callTimeout time.Duration, avoidCap int) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		callTimeout: callTimeout,
		avoidCap:    avoidCap,
	}, nil
}

// RunPass executes one complete generation call. The textual payload is
// re-parsed and validated against the quiz schema before use; the SDK's
// formatting guarantees are advisory, not contractual. Failures of any
// kind surface as a single GENERATION_FAILED error and are not retried
// here.
func (g *GeminiGenerator) RunPass(ctx context.Context, req domain.PassRequest) (*domain.QuestionSet, error) {
	instructions := BuildInstructions(req, g.avoidCap)

	parts := []llms.ContentPart{llms.TextPart(instructions)}
	if req.Text != "" {
		parts = append(parts, llms.TextPart("Document content:\n\n"+req.Text))
	} else {
		parts = append(parts, llms.BinaryPart("application/pdf", req.Document))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.GenerateContent(callCtx,
		[]llms.MessageContent{{Role: schema.ChatMessageTypeHuman, Parts: parts}},
		llms.WithJSONMode(),
		llms.WithTemperature(0.4),
	)
	if err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("%s: %w", req.Label, err))
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewGenerationError(fmt.Errorf("%s: model returned no candidates", req.Label))
	}

	payload := []byte(unfence(resp.Choices[0].Content))

	if err := validatePayload(payload); err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("%s: %w", req.Label, err))
	}

	var set domain.QuestionSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("%s: failed to parse model output: %w", req.Label, err))
	}

	if err := validateSet(&set); err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("%s: %w", req.Label, err))
	}

	logger.Get().Info("Generation pass complete",
		zap.String("pass", req.Label),
		zap.Int("mcq", len(set.MCQ)),
		zap.Int("tf", len(set.TF)),
		zap.Int("fib", len(set.FIB)),
		zap.Duration("duration", time.Since(start)),
	)

	return &set, nil
}

// validateSet runs the per-variant structural checks on every ingested
// question.
func validateSet(set *domain.QuestionSet) error {
	for _, q := range set.MCQ {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	for _, q := range set.TF {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	for _, q := range set.FIB {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// unfence strips a ```json ... ``` wrapper some models add around the
// payload despite JSON mode.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ domain.QuizGenerator = (*GeminiGenerator)(nil)
