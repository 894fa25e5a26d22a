package handler

import (
	"io"
	"mime/multipart"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/service"
	"pdfquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
	defaults  QuizDefaults
}

// QuizDefaults carries the configured per-kind targets and the
// incremental batch size.
type QuizDefaults struct {
	MCQ       int
	TF        int
	FIB       int
	NextBatch int
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator, defaults QuizDefaults) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
		defaults:  defaults,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an uploaded PDF
// @Description Runs the stateless flow: multiple generation passes merged into one deduplicated set
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param pdf formData file true "PDF document"
// @Param mcq formData int false "MCQ target count"
// @Param tf formData int false "True/False target count"
// @Param fib formData int false "Fill-in-blank target count"
// @Param start_page formData int false "First page (1-based)"
// @Param end_page formData int false "Last page (1-based)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	doc, errs := h.readUpload(c)
	if errs != nil {
		return errs
	}

	targets := domain.Counts{}
	var verrs domain.ValidationErrors
	var fieldErrs domain.ValidationErrors

	targets.MCQ, fieldErrs = h.validator.ParseCount("mcq", c.FormValue("mcq"), h.defaults.MCQ)
	verrs = append(verrs, fieldErrs...)
	targets.TF, fieldErrs = h.validator.ParseCount("tf", c.FormValue("tf"), h.defaults.TF)
	verrs = append(verrs, fieldErrs...)
	targets.FIB, fieldErrs = h.validator.ParseCount("fib", c.FormValue("fib"), h.defaults.FIB)
	verrs = append(verrs, fieldErrs...)

	startPage, endPage, rangeRequested, fieldErrs := h.readPageRange(c)
	verrs = append(verrs, fieldErrs...)

	if len(verrs) > 0 {
		return verrs
	}

	resp, err := h.service.GenerateQuiz(c.Context(), doc, targets, startPage, endPage, rangeRequested)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// NextQuestions godoc
// @Summary Generate the next batch of questions for a session
// @Description Extends the session's accumulated MCQ set without repeating previous questions
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param pdf formData file true "PDF document (must match the session's document)"
// @Param session_id formData string true "Client-chosen session identifier"
// @Param count formData int false "Batch size"
// @Param start_page formData int false "First page (1-based)"
// @Param end_page formData int false "Last page (1-based)"
// @Success 200 {object} dto.NextQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quiz/next [post]
func (h *QuizHandler) NextQuestions(c *fiber.Ctx) error {
	doc, errs := h.readUpload(c)
	if errs != nil {
		return errs
	}

	sessionID := c.FormValue("session_id")
	var verrs domain.ValidationErrors
	verrs = append(verrs, h.validator.ValidateSessionID(sessionID)...)

	count, fieldErrs := h.validator.ParseCount("count", c.FormValue("count"), h.defaults.NextBatch)
	verrs = append(verrs, fieldErrs...)

	startPage, endPage, _, fieldErrs := h.readPageRange(c)
	verrs = append(verrs, fieldErrs...)

	if len(verrs) > 0 {
		return verrs
	}

	resp, err := h.service.NextQuestions(c.Context(), doc, sessionID, count, startPage, endPage)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetSession godoc
// @Summary Reset a session
// @Description Removes the session's accumulated questions immediately
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param session_id formData string true "Session identifier"
// @Success 200 {object} dto.ResetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quiz/reset [post]
func (h *QuizHandler) ResetSession(c *fiber.Ctx) error {
	sessionID := c.FormValue("session_id")
	if verrs := h.validator.ValidateSessionID(sessionID); len(verrs) > 0 {
		return verrs
	}
	return c.JSON(h.service.ResetSession(sessionID))
}

// readUpload pulls the "pdf" multipart field and returns its bytes.
func (h *QuizHandler) readUpload(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return nil, domain.ValidationErrors{
			{Field: "pdf", Message: "no PDF uploaded (field name must be 'pdf')"},
		}
	}

	if verrs := h.validator.ValidateUpload(fileHeader.Filename, int(fileHeader.Size)); len(verrs) > 0 {
		return nil, verrs
	}

	doc, err := readAll(fileHeader)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read uploaded file", err)
	}
	if len(doc) == 0 {
		return nil, domain.NewInvalidInputError("PDF appears empty")
	}
	return doc, nil
}

// readPageRange parses the optional start_page/end_page fields. A
// missing bound defaults to the document edge (1 or last page) at
// extraction time.
func (h *QuizHandler) readPageRange(c *fiber.Ctx) (start, end int, requested bool, errs domain.ValidationErrors) {
	rawStart := c.FormValue("start_page")
	rawEnd := c.FormValue("end_page")
	requested = rawStart != "" || rawEnd != ""

	var fieldErrs domain.ValidationErrors
	start, fieldErrs = h.validator.ParsePageBound("start_page", rawStart)
	errs = append(errs, fieldErrs...)
	end, fieldErrs = h.validator.ParsePageBound("end_page", rawEnd)
	errs = append(errs, fieldErrs...)

	if start == 0 {
		start = 1
	}
	if end == 0 {
		// Clamped down to the real page count during extraction.
		end = 1 << 30
	}
	return start, end, requested, errs
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
