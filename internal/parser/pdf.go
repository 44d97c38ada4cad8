package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/qaseg/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Extract(ctx context.Context, r io.Reader, filename string) (*document.RawDocument, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "qaseg-pdf-*.pdf")
	if err != nil {
		return nil, extractionError("pdf", fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, extractionError("pdf", fmt.Errorf("write temp file: %w", err))
	}
	tmp.Close()

	pages, err := extractPDFPages(ctx, tmpPath)
	if err != nil && p.FallbackPdftotext && ctx.Err() == nil {
		pages, err = extractPdftotext(ctx, tmpPath)
	}
	if err != nil {
		return nil, extractionError("pdf", err)
	}

	return &document.RawDocument{
		Title:     titleFrom(filename),
		Text:      strings.Join(pages, "\n"),
		PageCount: len(pages),
	}, nil
}

// extractPDFPages returns the plain text of every page. Pages that fail to
// decode come back empty so page numbering stays aligned. A document where no
// page yields text is an error, so the caller can fall back to pdftotext.
func extractPDFPages(ctx context.Context, path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	pages := make([]string, 0, numPages)
	failed := 0
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			failed++
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	if !hasText(pages) {
		return nil, fmt.Errorf("no extractable text in %d pages (%d failed to decode)", numPages, failed)
	}
	return pages, nil
}

func extractPdftotext(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	pages := splitPages(string(out))
	if !hasText(pages) {
		return nil, fmt.Errorf("pdftotext: no extractable text in %d pages", len(pages))
	}
	return pages, nil
}

func hasText(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}

// splitPages splits pdftotext output on form feeds. pdftotext ends the last
// page with a form feed too, which is dropped.
func splitPages(text string) []string {
	text = strings.TrimSuffix(text, "\f")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\f")
}
