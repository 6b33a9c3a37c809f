package extractor

import (
	"mime"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatUnsupported Format = iota
	FormatText
	FormatPDF
	FormatDOCX
	FormatLegacyDOC
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	case FormatLegacyDOC:
		return "doc"
	default:
		return "unsupported"
	}
}

var suffixFormats = map[string]Format{
	".txt":      FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".csv":      FormatText,
	".log":      FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".doc":      FormatLegacyDOC,
}

// DetectFormat picks the format from the declared media type and falls back
// to the file name suffix when the type says nothing useful.
func DetectFormat(mediaType, fileName string) Format {
	mt := normalizeMediaType(mediaType)

	switch {
	case strings.HasPrefix(mt, "text/"):
		return FormatText
	case mt == "application/pdf":
		return FormatPDF
	case strings.Contains(mt, "wordprocessingml"):
		return FormatDOCX
	case mt == "application/msword":
		return FormatLegacyDOC
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if f, ok := suffixFormats[ext]; ok {
		return f
	}
	return FormatUnsupported
}

// MediaTypeFor returns the canonical media type recorded for a format.
func MediaTypeFor(f Format, declared string) string {
	switch f {
	case FormatText:
		if mt := normalizeMediaType(declared); strings.HasPrefix(mt, "text/") {
			return mt
		}
		return "text/plain"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatLegacyDOC:
		return "application/msword"
	default:
		return normalizeMediaType(declared)
	}
}

func normalizeMediaType(mediaType string) string {
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return strings.ToLower(mt)
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
