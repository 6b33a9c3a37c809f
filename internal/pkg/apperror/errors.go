package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	KindExtractionFailed  Kind = "EXTRACTION_FAILED"
	KindNoDocuments       Kind = "NO_DOCUMENTS"
	KindProviderError     Kind = "PROVIDER_ERROR"
	KindInternal          Kind = "INTERNAL_ERROR"
)

// AppError is the error type services hand back to the HTTP layer.
// Message is safe to show to the client, Err is for logs only.
type AppError struct {
	Code    int
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidInput(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: message}
}

func NewUnsupportedFormat(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindUnsupportedFormat, Message: message, Err: err}
}

func NewExtractionFailed(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindExtractionFailed, Message: message, Err: err}
}

func NewNoDocuments() *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindNoDocuments,
		Message: "No documents uploaded. Please upload a document before asking questions.",
	}
}

func NewProviderError(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindProviderError,
		Message: "Failed to get a response from the AI provider",
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
