package domain

// ExtractedRange is the result of extracting a clamped page range.
// TotalPages of 0 means the document was unreadable; callers treat that
// as a terminal input error.
type ExtractedRange struct {
	Text       string
	TotalPages int
	Start      int
	End        int
}

// TextExtractor is the boundary to the PDF text extraction library.
type TextExtractor interface {
	ExtractRange(doc []byte, start, end int) (ExtractedRange, error)
}
