package segment

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPattern matches a question marker: "Q", the question number, a
// period, whitespace, then the question text up to the end of the line.
const DefaultPattern = `Q(\d+)\.\s+([^\n]+)`

// Boundary is one question marker found in the text.
type Boundary struct {
	Ordinal int    // Number printed after the marker, verbatim
	Label   string // Trimmed question text
	Start   int    // Offset where the marker match begins
	End     int    // Offset just past the match; the answer starts here
}

// Scanner finds question markers in text.
type Scanner struct {
	re *regexp.Regexp
}

// NewScanner compiles a marker pattern. Group 1 must capture the ordinal and
// group 2 the question text.
func NewScanner(pattern string) (*Scanner, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile marker pattern: %w", err)
	}
	if re.NumSubexp() < 2 {
		return nil, fmt.Errorf("marker pattern %q needs 2 capture groups (ordinal, label), has %d", pattern, re.NumSubexp())
	}
	return &Scanner{re: re}, nil
}

// Boundaries yields the markers in text from left to right. Each call starts
// a fresh scan. Matching always sees the whole text, so anchors such as ^ and
// \b keep their meaning between markers.
func (s *Scanner) Boundaries(text string) iter.Seq[Boundary] {
	return func(yield func(Boundary) bool) {
		for _, loc := range s.re.FindAllStringSubmatchIndex(text, -1) {
			b := Boundary{
				Ordinal: parseOrdinal(group(text, loc, 1)),
				Label:   strings.TrimSpace(group(text, loc, 2)),
				Start:   loc[0],
				End:     loc[1],
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Collect returns all boundaries in text.
func (s *Scanner) Collect(text string) []Boundary {
	var out []Boundary
	for b := range s.Boundaries(text) {
		out = append(out, b)
	}
	return out
}

func group(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}

// parseOrdinal reads the marker number. Numbers too large for an int are
// reported as 0.
func parseOrdinal(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
