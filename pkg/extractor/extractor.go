package extractor

import (
	"context"
	"strings"
)

const (
	PDFNoTextPlaceholder  = "[No extractable text found in this PDF. It may be a scanned image.]"
	DOCXNoTextPlaceholder = "[No extractable text found in this document.]"
)

type extractFunc func(data []byte) (string, error)

// Extractor turns uploaded bytes into plain UTF-8 text.
type Extractor struct {
	handlers map[Format]extractFunc
}

func New() *Extractor {
	return &Extractor{
		handlers: map[Format]extractFunc{
			FormatText: extractText,
			FormatPDF:  extractPDF,
			FormatDOCX: extractDOCX,
		},
	}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType, fileName string) (string, error) {
	return e.ExtractFormat(ctx, DetectFormat(mediaType, fileName), data, fileName)
}

// ExtractFormat runs the handler for an already detected format.
func (e *Extractor) ExtractFormat(ctx context.Context, format Format, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	handler, ok := e.handlers[format]
	if !ok {
		return "", &UnsupportedFormatError{Format: format, FileName: fileName}
	}

	text, err := handler(data)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		switch format {
		case FormatPDF:
			return PDFNoTextPlaceholder, nil
		case FormatDOCX:
			return DOCXNoTextPlaceholder, nil
		}
	}
	return text, nil
}
