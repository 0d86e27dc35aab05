package pdf

import (
	"bytes"
	"fmt"

	pdfreader "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	apperrors "aura/internal/errors"
)

// Extractor pulls plain text and a page count out of a PDF file on disk.
type Extractor interface {
	Extract(path string) (text string, pages int, err error)
}

type extractor struct{}

// NewExtractor returns the production extractor.
func NewExtractor() Extractor {
	return extractor{}
}

// Extract validates the file, counts its pages and extracts plain text.
// Any failure maps to ErrParseFailed so callers can clean up the upload.
func (extractor) Extract(path string) (text string, pages int, err error) {
	// The text reader is known to panic on malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", apperrors.ErrParseFailed, r)
		}
	}()

	if err := api.ValidateFile(path, nil); err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrParseFailed, err)
	}
	pages, err = api.PageCountFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrParseFailed, err)
	}

	f, reader, err := pdfreader.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrParseFailed, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrParseFailed, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrParseFailed, err)
	}
	return buf.String(), pages, nil
}
