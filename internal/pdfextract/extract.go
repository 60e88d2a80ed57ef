// Package pdfextract extracts plain text from PDF documents.
package pdfextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/comptlabs/waitlist/internal/domain"
	"github.com/ledongthuc/pdf"
)

// minMeaningfulChars is the threshold below which an extraction result is
// treated as empty, covering image-only and corrupt PDFs.
const minMeaningfulChars = 10

var pdfHeader = []byte("%PDF")

// ValidateHeader checks the 4-byte magic at the start of a PDF buffer.
func ValidateHeader(data []byte) error {
	if !bytes.HasPrefix(data, pdfHeader) {
		return fmt.Errorf("not a PDF file: missing %%PDF header")
	}
	return nil
}

// Text extracts plain text from a PDF buffer. Per-page text items are joined
// with single spaces and whitespace runs are collapsed. Results shorter than
// the meaningful-text threshold return domain.ErrNoMeaningfulText.
func Text(data []byte) (string, error) {
	if err := ValidateHeader(data); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages fail to parse; keep what the rest yields.
			continue
		}
		if text != "" {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(text)
		}
	}

	extracted := collapseWhitespace(b.String())
	if len(extracted) < minMeaningfulChars {
		return "", domain.ErrNoMeaningfulText
	}
	return extracted, nil
}

// FromReader reads the full document from r and extracts its text.
func FromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}
	return Text(data)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
