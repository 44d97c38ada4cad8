package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/qaseg/internal/document"
)

// DOCXParser handles .docx files. Every non-empty paragraph becomes one line.
type DOCXParser struct{}

func (p *DOCXParser) Extract(ctx context.Context, r io.Reader, filename string) (*document.RawDocument, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "qaseg-docx-*.docx")
	if err != nil {
		return nil, extractionError("docx", fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, extractionError("docx", fmt.Errorf("write temp file: %w", err))
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, extractionError("docx", fmt.Errorf("seek temp file: %w", err))
	}
	if err := ctx.Err(); err != nil {
		tmp.Close()
		return nil, extractionError("docx", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, extractionError("docx", err)
	}

	var text strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if t := docxParagraphText(para); t != "" {
			text.WriteString(t)
			text.WriteString("\n")
		}
	}

	// Word files carry no reliable page count without layout, so PageCount stays 0.
	return &document.RawDocument{
		Title: titleFrom(filename),
		Text:  text.String(),
	}, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
