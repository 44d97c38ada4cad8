// Package segment splits the extracted text of a Q&A compendium into
// question/answer records.
//
// A run skips the front matter up to a content anchor, scans for question
// markers, and assigns each marker the text between it and the next marker as
// its answer, with page-number lines removed.
package segment

// Options controls segmentation.
type Options struct {
	Anchor  string // Literal string marking the start of real content
	Pattern string // Marker regexp; group 1 is the ordinal, group 2 the question
}

// DefaultOptions returns the settings for the .NET interview compendium.
func DefaultOptions() Options {
	return Options{
		Anchor:  DefaultAnchor,
		Pattern: DefaultPattern,
	}
}

// Result is the outcome of segmenting one document.
type Result struct {
	Records      []Record
	AnchorFound  bool
	SkippedBytes int // Bytes of front matter dropped before scanning
	Boundaries   int
}

// Segmenter runs the skip, scan and assemble steps over a document's text.
type Segmenter struct {
	anchor  string
	scanner *Scanner
}

// New builds a Segmenter. It fails only when the marker pattern is invalid.
func New(opts Options) (*Segmenter, error) {
	sc, err := NewScanner(opts.Pattern)
	if err != nil {
		return nil, err
	}
	return &Segmenter{anchor: opts.Anchor, scanner: sc}, nil
}

// Segment turns text into records. It never fails: a missing anchor scans the
// whole text and no markers yields an empty result.
func (s *Segmenter) Segment(text string) Result {
	content, skipped, found := SkipFrontMatter(text, s.anchor)

	count := 0
	counted := func(yield func(Boundary) bool) {
		for b := range s.scanner.Boundaries(content) {
			count++
			if !yield(b) {
				return
			}
		}
	}

	records := Assemble(content, counted, Clean)
	return Result{
		Records:      records,
		AnchorFound:  found,
		SkippedBytes: skipped,
		Boundaries:   count,
	}
}
