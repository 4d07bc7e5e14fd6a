// Package extract inspects uploaded resumes.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// ErrNotPDF is returned when the payload does not look like a PDF document.
var ErrNotPDF = errors.New("not a pdf document")

// Info is what the inspection learned about a resume.
type Info struct {
	MimeType string
	Pages    int
}

// Inspect sniffs the payload type and counts PDF pages.
func Inspect(ctx context.Context, data []byte) (info Info, err error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	info.MimeType = http.DetectContentType(data)
	if info.MimeType != mimePDF {
		return info, ErrNotPDF
	}

	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return info, fmt.Errorf("parse pdf: %w", err)
	}
	info.Pages = pdfReader.NumPage()
	return info, nil
}
