package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", newExtractionError(FormatPDF, errors.New("empty file"))
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = newExtractionError(FormatPDF, fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newExtractionError(FormatPDF, err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", newExtractionError(FormatPDF, err)
	}

	out, err := io.ReadAll(reader)
	if err != nil {
		return "", newExtractionError(FormatPDF, err)
	}

	return strings.ToValidUTF8(string(out), ""), nil
}
