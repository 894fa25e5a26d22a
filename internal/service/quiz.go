package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pdfquiz/internal/cache"
	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/dto"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/pdftext"
	"pdfquiz/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// statelessPasses is how many generation passes a stateless request is
// split across to work around single-call output limits.
const statelessPasses = 2

// QuizService defines the interface for quiz generation operations
type QuizService interface {
	// GenerateQuiz runs the stateless flow: extract, generate in
	// passes, merge, trim. rangeRequested distinguishes an explicit
	// page range from the full-document default.
	GenerateQuiz(ctx context.Context, doc []byte, targets domain.Counts, startPage, endPage int, rangeRequested bool) (*dto.QuizResponse, error)

	// NextQuestions runs the incremental flow against a session:
	// generate one batch avoiding the session's accumulated prompts,
	// extend the session, and return the running total.
	NextQuestions(ctx context.Context, doc []byte, sessionID string, count, startPage, endPage int) (*dto.NextQuestionsResponse, error)

	// ResetSession removes the session immediately.
	ResetSession(sessionID string) *dto.ResetResponse
}

type quizService struct {
	generator domain.QuizGenerator
	extractor domain.TextExtractor
	sessions  *session.Store
	cache     domain.Cache
	cfg       *config.Config
}

// NewQuizService creates a new instance of quizService. cache may be
// nil, in which case result caching is skipped.
func NewQuizService(
	generator domain.QuizGenerator,
	extractor domain.TextExtractor,
	sessions *session.Store,
	resultCache domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		generator: generator,
		extractor: extractor,
		sessions:  sessions,
		cache:     resultCache,
		cfg:       cfg,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, doc []byte, targets domain.Counts, startPage, endPage int, rangeRequested bool) (*dto.QuizResponse, error) {
	start := time.Now()

	fingerprint := fingerprintOf(doc)
	extracted, err := s.extractor.ExtractRange(doc, startPage, endPage)
	if err != nil {
		return nil, domain.NewInternalError("Failed to extract document text", err)
	}
	if extracted.TotalPages == 0 {
		return nil, domain.NewInvalidInputError("Document is unreadable or contains no pages")
	}
	if rangeRequested && extracted.Text == "" {
		return nil, domain.NewInvalidInputError("No extractable text in the requested page range")
	}

	cacheKey := cache.ResultKey(fingerprint, extracted.Start, extracted.End, targets.MCQ, targets.TF, targets.FIB)
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// Only an explicit sub-range goes to the model as extracted text;
	// the full-document default sends the PDF itself, which keeps
	// figures and layout visible to the model.
	var text string
	if rangeRequested {
		text = pdftext.Truncate(extracted.Text, s.cfg.Quiz.TextBudget)
	}

	// Passes share no mutable state; run them concurrently. A failure
	// in either pass cancels the other and fails the whole request —
	// partial quiz sets are not useful outputs.
	perPass := targets.Halve()
	results := make([]domain.QuestionSet, statelessPasses)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < statelessPasses; i++ {
		i := i
		g.Go(func() error {
			set, err := s.generator.RunPass(gctx, domain.PassRequest{
				Document:    doc,
				Text:        text,
				Counts:      perPass,
				Label:       fmt.Sprintf("PASS %d", i+1),
				TotalPasses: statelessPasses,
			})
			if err != nil {
				return err
			}
			results[i] = *set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := domain.MergeSets(results, targets)
	resp := dto.FromQuestionSet(merged)

	s.storeResult(ctx, cacheKey, resp)

	logger.Get().Info("Quiz generated",
		zap.Int("mcq", len(merged.MCQ)),
		zap.Int("tf", len(merged.TF)),
		zap.Int("fib", len(merged.FIB)),
		zap.Int("start_page", extracted.Start),
		zap.Int("end_page", extracted.End),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// NextQuestions implements QuizService
func (s *quizService) NextQuestions(ctx context.Context, doc []byte, sessionID string, count, startPage, endPage int) (*dto.NextQuestionsResponse, error) {
	fingerprint := fingerprintOf(doc)
	extracted, err := s.extractor.ExtractRange(doc, startPage, endPage)
	if err != nil {
		return nil, domain.NewInternalError("Failed to extract document text", err)
	}
	if extracted.TotalPages == 0 {
		return nil, domain.NewInvalidInputError("Document is unreadable or contains no pages")
	}
	if extracted.Text == "" {
		return nil, domain.NewInvalidInputError("No extractable text in the requested page range")
	}

	sess, err := s.sessions.GetOrCreate(sessionID, fingerprint)
	if err != nil {
		return nil, err
	}

	avoid := make([]string, 0, len(sess.Questions))
	for _, q := range sess.Questions {
		avoid = append(avoid, q.Prompt)
	}

	set, err := s.generator.RunPass(ctx, domain.PassRequest{
		Text:        pdftext.Truncate(extracted.Text, s.cfg.Quiz.TextBudget),
		Counts:      domain.Counts{MCQ: count},
		Label:       "PASS 1",
		TotalPasses: 1,
		Avoid:       avoid,
	})
	if err != nil {
		// No session state has been touched; the accumulated sequence
		// stays exactly as it was.
		return nil, err
	}

	added, all, err := s.sessions.Extend(sessionID, set.MCQ)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Session extended",
		zap.String("session_id", sessionID),
		zap.Int("added", len(added)),
		zap.Int("total", len(all)),
	)

	return &dto.NextQuestionsResponse{
		SessionID:  sessionID,
		Questions:  dto.FromMCQs(all),
		Added:      len(added),
		Total:      len(all),
		TotalPages: extracted.TotalPages,
		StartPage:  extracted.Start,
		EndPage:    extracted.End,
	}, nil
}

// ResetSession implements QuizService
func (s *quizService) ResetSession(sessionID string) *dto.ResetResponse {
	s.sessions.Reset(sessionID)
	return &dto.ResetResponse{SessionID: sessionID, Reset: true}
}

// cachedResult returns a previously cached response, or nil on miss,
// disabled caching, or any cache failure. Cache errors degrade to a
// miss; they never fail the request.
func (s *quizService) cachedResult(ctx context.Context, key string) *dto.QuizResponse {
	if s.cache == nil || s.cfg.Quiz.ResultCacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Result cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}
	var resp dto.QuizResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Get().Warn("Discarding malformed cached result", zap.Error(err), zap.String("key", key))
		return nil
	}
	logger.Get().Info("Result cache hit", zap.String("key", key))
	return &resp
}

func (s *quizService) storeResult(ctx context.Context, key string, resp *dto.QuizResponse) {
	if s.cache == nil || s.cfg.Quiz.ResultCacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cfg.Quiz.ResultCacheTTL); err != nil {
		logger.Get().Warn("Result cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// fingerprintOf derives the session-binding fingerprint from the raw
// document bytes. sha256 keeps fingerprint collisions out of the
// conflict-detection path.
func fingerprintOf(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
