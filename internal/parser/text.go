package parser

import (
	"context"
	"io"
	"strings"

	"github.com/dgallion1/qaseg/internal/document"
)

// TextParser handles plain text files, such as an earlier extraction dump.
// The text is passed through verbatim apart from CRLF normalization.
type TextParser struct{}

func (p *TextParser) Extract(ctx context.Context, r io.Reader, filename string) (*document.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, extractionError("text", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, extractionError("text", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	pages := 0
	if text != "" {
		pages = strings.Count(text, "\f") + 1
	}
	return &document.RawDocument{
		Title:     titleFrom(filename),
		Text:      strings.ReplaceAll(text, "\f", "\n"),
		PageCount: pages,
	}, nil
}
