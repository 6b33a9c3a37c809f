package extractor

import (
	"errors"
	"fmt"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

type UnsupportedFormatError struct {
	Format   Format
	FileName string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == FormatLegacyDOC {
		return "legacy .doc files are not supported, please convert to .docx"
	}
	return fmt.Sprintf("unsupported file type for %q, supported types are .txt, .pdf and .docx", e.FileName)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// ExtractionError means the parser rejected the bytes. Reason carries the
// parser's own message.
type ExtractionError struct {
	Format Format
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %s", e.Format, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newExtractionError(f Format, err error) *ExtractionError {
	return &ExtractionError{Format: f, Reason: err.Error(), Err: err}
}
