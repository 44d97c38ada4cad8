package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/qaseg/internal/segment"
)

// buildPDF writes a minimal PDF with one page per content stream. Every page
// uses Helvetica as /F1 with WinAnsi encoding.
func buildPDF(contents ...string) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 page tree, 3 font, then a page and its content per entry.
	kids := make([]string, len(contents))
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, content := range contents {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestPDFParser_PagesJoinedByNewline(t *testing.T) {
	data := buildPDF(
		"BT /F1 12 Tf 72 720 Td (Q1. What is X?) Tj T* (X is A.) Tj T* (3) Tj ET",
		"BT /F1 12 Tf 72 720 Td (Q2. What is Y?) Tj T* (Y is B.) Tj ET",
	)

	p := &PDFParser{}
	doc, err := p.Extract(context.Background(), bytes.NewReader(data), "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount != 2 {
		t.Errorf("expected 2 pages, got %d", doc.PageCount)
	}
	if doc.Title != "book" {
		t.Errorf("expected title %q, got %q", "book", doc.Title)
	}
	want := "\nQ1. What is X?\nX is A.\n3\n\nQ2. What is Y?\nY is B."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}

	// The footer number of page one must clean out of the first answer.
	seg, err := segment.New(segment.Options{})
	if err != nil {
		t.Fatal(err)
	}
	res := seg.Segment(doc.Text)
	wantRecords := []segment.Record{
		{ID: 1, Question: "What is X?", Answer: "X is A."},
		{ID: 2, Question: "What is Y?", Answer: "Y is B."},
	}
	if len(res.Records) != len(wantRecords) {
		t.Fatalf("expected %d records, got %+v", len(wantRecords), res.Records)
	}
	for i := range wantRecords {
		if res.Records[i] != wantRecords[i] {
			t.Errorf("record[%d]: expected %+v, got %+v", i, wantRecords[i], res.Records[i])
		}
	}
}

func TestPDFParser_BlankDocumentFails(t *testing.T) {
	data := buildPDF("")

	for _, fallback := range []bool{false, true} {
		t.Run(fmt.Sprintf("fallback=%v", fallback), func(t *testing.T) {
			p := &PDFParser{FallbackPdftotext: fallback}
			doc, err := p.Extract(context.Background(), bytes.NewReader(data), "scan.pdf")
			if err == nil {
				t.Fatalf("expected error for pdf without text, got %q", doc.Text)
			}
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("expected ErrExtraction, got %v", err)
			}
		})
	}
}

func TestHasText(t *testing.T) {
	tests := []struct {
		pages []string
		want  bool
	}{
		{nil, false},
		{[]string{"", " \n\t"}, false},
		{[]string{"", "Q1. x"}, true},
	}
	for _, tt := range tests {
		if got := hasText(tt.pages); got != tt.want {
			t.Errorf("hasText(%q): expected %v, got %v", tt.pages, tt.want, got)
		}
	}
}
