package validation

import (
	"regexp"
	"strconv"
	"strings"

	"pdfquiz/internal/domain"
)

// Caps on user-supplied counts; a single request should not be able to
// demand an unbounded amount of model output.
const (
	maxPerKindCount = 100
	maxSessionIDLen = 128
)

var validSessionID = regexp.MustCompile(`^[\x21-\x7E]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUpload checks the uploaded document field.
func (v *Validator) ValidateUpload(filename string, size int) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if filename == "" {
		errs = append(errs, domain.NewMissingFieldError("pdf"))
		return errs
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		errs = append(errs, domain.ValidationError{Field: "pdf", Message: "uploaded file is not a PDF"})
	}
	if size == 0 {
		errs = append(errs, domain.ValidationError{Field: "pdf", Message: "uploaded file is empty"})
	}

	return errs
}

// ValidateSessionID checks the client-supplied session identifier.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError("session_id"))
		return errs
	}
	if len(id) > maxSessionIDLen || !validSessionID.MatchString(id) {
		errs = append(errs, domain.NewInvalidFormatError("session_id", id))
	}

	return errs
}

// ParseCount parses an optional positive count field, returning def
// when the field is absent.
func (v *Validator) ParseCount(field, raw string, def int) (int, domain.ValidationErrors) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	if n < 1 || n > maxPerKindCount {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError(field, n, 1, maxPerKindCount)}
	}
	return n, nil
}

// ParsePageBound parses an optional page bound. Zero means "not
// supplied"; clamping to the document happens later in extraction.
func (v *Validator) ParsePageBound(field, raw string) (int, domain.ValidationErrors) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return n, nil
}
