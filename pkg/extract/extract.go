// Package extract pulls plain text out of uploaded study documents so it can
// be fed to the summarization model.
package extract

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned for document formats without a text extractor.
var ErrUnsupported = errors.New("unsupported document format")

// MIME types accepted by the upload endpoint.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
)

// Text extracts plain text from the document using the extractor matching its
// MIME type. Legacy binary .doc has no extractor and reports ErrUnsupported.
func Text(mimeType string, data []byte) (string, error) {
	switch {
	case strings.HasPrefix(mimeType, MimePDF):
		return PDF(data)
	case strings.HasPrefix(mimeType, MimeDOCX):
		return DOCX(data)
	default:
		return "", ErrUnsupported
	}
}
