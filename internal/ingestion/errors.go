package ingestion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned for documents whose extension has no decoder.
var ErrUnsupportedType = errors.New("unsupported document type")

// ErrNoText is the cause of an ExtractionError for a PDF that decodes without any text,
// such as a scanned image or a protected file.
var ErrNoText = errors.New("no text found, the file might be corrupted or password protected")

// ExtractionError wraps a failure to decode a document into text.
type ExtractionError struct {
	Filename string
	Format   Format
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text from %s: %v", e.Format, e.Filename, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text from %s", e.Format, e.Filename)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
