package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxDOCXBodyBytes caps the inflated size of word/document.xml.
var maxDOCXBodyBytes int64 = 64 << 20

var errDOCXBodyTooLarge = errors.New("word/document.xml is too large")

// cappedReader fails once more than limit bytes have been read.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, errDOCXBodyTooLarge
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}

func (c *cappedReader) exceeded() bool {
	return c.remaining <= 0
}

func extractDOCX(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newExtractionError(FormatDOCX, err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", newExtractionError(FormatDOCX, errors.New("word/document.xml not found"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", newExtractionError(FormatDOCX, err)
	}
	defer rc.Close()

	body := &cappedReader{r: rc, remaining: maxDOCXBodyBytes + 1}
	text, err := docxTextFromXML(body)
	if body.exceeded() {
		return "", newExtractionError(FormatDOCX, fmt.Errorf("%w: over %d bytes uncompressed", errDOCXBodyTooLarge, maxDOCXBodyBytes))
	}
	if err != nil {
		return "", newExtractionError(FormatDOCX, err)
	}
	return text, nil
}

func docxTextFromXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	lastWasNewline := true

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t", "instrText":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", err
				}
				buf.WriteString(text)
				lastWasNewline = false
			case "tab":
				buf.WriteByte('\t')
				lastWasNewline = false
			case "br", "cr":
				buf.WriteByte('\n')
				lastWasNewline = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "tr":
				if !lastWasNewline {
					buf.WriteByte('\n')
					lastWasNewline = true
				}
			case "tc":
				if !lastWasNewline {
					buf.WriteByte('\t')
				}
			}
		}
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
