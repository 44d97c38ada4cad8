package segment

import (
	"slices"
	"strings"
	"testing"
)

func TestAssemble_PairingCompleteness(t *testing.T) {
	s := newTestScanner(t)
	for n := 0; n <= 5; n++ {
		var sb strings.Builder
		sb.WriteString("intro text\n")
		for i := 1; i <= n; i++ {
			sb.WriteString("Q")
			sb.WriteString(strings.Repeat("1", i))
			sb.WriteString(". question\nanswer\n")
		}
		text := sb.String()
		records := Assemble(text, s.Boundaries(text), Clean)
		if len(records) != n {
			t.Errorf("n=%d: expected %d records, got %d", n, n, len(records))
		}
	}
}

func TestAssemble_SpanExactness(t *testing.T) {
	text := "Q1. first\nalpha\n\n10\n\nQ2. second\nbeta\nQ3. third\ngamma\n"
	s := newTestScanner(t)
	boundaries := s.Collect(text)
	records := Assemble(text, slices.Values(boundaries), nil)

	// Rebuild the text from the markers and the raw answer spans.
	var sb strings.Builder
	sb.WriteString(text[:boundaries[0].Start])
	for i, b := range boundaries {
		sb.WriteString(text[b.Start:b.End])
		sb.WriteString(records[i].Answer)
	}
	if sb.String() != text {
		t.Errorf("spans do not reconstruct the text:\nwant %q\ngot  %q", text, sb.String())
	}
}

func TestAssemble_CleansEachAnswer(t *testing.T) {
	text := "Q1. a\nfirst\n\n5\n\nQ2. b\nsecond\n6\n"
	s := newTestScanner(t)
	records := Assemble(text, s.Boundaries(text), Clean)

	want := []string{"first", "second"}
	for i, w := range want {
		if records[i].Answer != w {
			t.Errorf("record[%d]: expected answer %q, got %q", i, w, records[i].Answer)
		}
	}
}

func TestAssemble_EmptySequence(t *testing.T) {
	records := Assemble("anything", slices.Values([]Boundary(nil)), Clean)
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", records)
	}
}
