package segment

import (
	"strings"
	"testing"
)

func mustSegmenter(t *testing.T, anchor string) *Segmenter {
	t.Helper()
	s, err := New(Options{Anchor: anchor, Pattern: DefaultPattern})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestSegment_EndToEnd(t *testing.T) {
	input := "HEADER Q1. What is X?\nX is A.\n\n3\n\nQ2. What is Y?\nY is B."
	res := mustSegmenter(t, "HEADER").Segment(input)

	want := []Record{
		{ID: 1, Question: "What is X?", Answer: "X is A."},
		{ID: 2, Question: "What is Y?", Answer: "Y is B."},
	}
	if len(res.Records) != len(want) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(res.Records), res.Records)
	}
	for i, w := range want {
		if res.Records[i] != w {
			t.Errorf("record[%d]: expected %+v, got %+v", i, w, res.Records[i])
		}
	}
	if !res.AnchorFound {
		t.Error("expected anchor to be found")
	}
	if res.Boundaries != 2 {
		t.Errorf("expected 2 boundaries, got %d", res.Boundaries)
	}
}

func TestSegment_SkipsTableOfContents(t *testing.T) {
	input := "Contents\nQ1. Foo\nQ2. Bar\nANCHOR Q1. Foo\nReal answer.\nQ2. Bar\nSecond answer."
	res := mustSegmenter(t, "ANCHOR").Segment(input)

	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(res.Records), res.Records)
	}
	if res.Records[0].Answer != "Real answer." {
		t.Errorf("expected first answer %q, got %q", "Real answer.", res.Records[0].Answer)
	}
	if res.SkippedBytes != strings.Index(input, "ANCHOR") {
		t.Errorf("expected %d skipped bytes, got %d", strings.Index(input, "ANCHOR"), res.SkippedBytes)
	}
}

func TestSegment_MissingAnchorScansEverything(t *testing.T) {
	input := "Q1. Foo\nfoo answer\nQ2. Bar\nbar answer"
	res := mustSegmenter(t, "NOT PRESENT").Segment(input)

	if res.AnchorFound {
		t.Error("expected anchor not to be found")
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Records[1].Answer != "bar answer" {
		t.Errorf("expected %q, got %q", "bar answer", res.Records[1].Answer)
	}
}

func TestSegment_NoMarkers(t *testing.T) {
	res := mustSegmenter(t, "").Segment("just some prose\nwith no questions")
	if res.Records == nil {
		t.Fatal("expected empty, non-nil records")
	}
	if len(res.Records) != 0 {
		t.Errorf("expected 0 records, got %d", len(res.Records))
	}
	if res.Boundaries != 0 {
		t.Errorf("expected 0 boundaries, got %d", res.Boundaries)
	}
}

func TestSegment_SingleMarkerClosedByEndOfText(t *testing.T) {
	res := mustSegmenter(t, "").Segment("preamble Q7. Only one?\nThe only answer.\n12\n")
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	got := res.Records[0]
	if got.ID != 7 || got.Question != "Only one?" || got.Answer != "The only answer." {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestSegment_DuplicateOrdinalsPassThrough(t *testing.T) {
	res := mustSegmenter(t, "").Segment("Q3. A\na\nQ3. B\nb\nQ1. C\nc")
	ids := []int{}
	for _, r := range res.Records {
		ids = append(ids, r.ID)
	}
	want := []int{3, 3, 1}
	if len(ids) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d]: expected %d, got %d", i, want[i], ids[i])
		}
	}
}

func TestSegment_Idempotent(t *testing.T) {
	input := "X Q1. One\n1 body\n\n4\n\nQ2. Two\n2 body"
	s := mustSegmenter(t, "X")
	a := s.Segment(input)
	b := s.Segment(input)
	if len(a.Records) != len(b.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(a.Records), len(b.Records))
	}
	for i := range a.Records {
		if a.Records[i] != b.Records[i] {
			t.Errorf("record[%d] differs: %+v vs %+v", i, a.Records[i], b.Records[i])
		}
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"bad syntax", `Q(\d+`},
		{"one group", `Q(\d+)\.`},
		{"no groups", `Q\d+\.`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(Options{Pattern: tc.pattern}); err == nil {
				t.Errorf("expected error for pattern %q", tc.pattern)
			}
		})
	}
}

func TestNew_EmptyPatternUsesDefault(t *testing.T) {
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := s.Segment("Q1. Hi\nthere")
	if len(res.Records) != 1 || res.Records[0].Question != "Hi" {
		t.Errorf("unexpected records %+v", res.Records)
	}
}
