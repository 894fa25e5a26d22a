package pdftext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor reads page-indexed plain text out of PDF bytes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractRange concatenates the extractable text of pages in the
// clamped range [start, end], joined with a blank line. Pages without
// extractable text are skipped. An unreadable document yields
// TotalPages 0 and no error; the caller rejects it as bad input.
func (e *Extractor) ExtractRange(doc []byte, start, end int) (domain.ExtractedRange, error) {
	pages := readPages(doc)
	total := len(pages)
	if total == 0 {
		return domain.ExtractedRange{}, nil
	}

	start, end = ClampRange(start, end, total)

	var parts []string
	for i := start; i <= end; i++ {
		if text := strings.TrimSpace(pages[i-1]); text != "" {
			parts = append(parts, text)
		}
	}

	return domain.ExtractedRange{
		Text:       strings.Join(parts, "\n\n"),
		TotalPages: total,
		Start:      start,
		End:        end,
	}, nil
}

// ClampRange clamps start and end independently into [1, total] and
// swaps them silently when end < start.
func ClampRange(start, end, total int) (int, int) {
	start = clamp(start, 1, total)
	end = clamp(end, 1, total)
	if end < start {
		start, end = end, start
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Truncate hard-cuts s to at most max bytes without splitting a rune;
// the transport requires valid UTF-8. Not sentence-aware. max <= 0
// disables the cut.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// readPages parses the document and returns per-page plain text, empty
// strings for pages with nothing extractable, or nil when the document
// is unreadable. The pdf library panics on some malformed inputs, so
// parsing is fenced with a recover.
func readPages(doc []byte) (pages []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("PDF parsing panicked; treating document as unreadable", zap.Any("panic", r))
			pages = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		logger.Get().Warn("Failed to open PDF", zap.Error(err))
		return nil
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or corrupt page: no extractable text.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages
}

var _ domain.TextExtractor = (*Extractor)(nil)
