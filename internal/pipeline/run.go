package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dgallion1/qaseg/internal/dataset"
	"github.com/dgallion1/qaseg/internal/document"
	"github.com/dgallion1/qaseg/internal/parser"
	"github.com/dgallion1/qaseg/internal/segment"
)

// Request describes one pipeline run.
type Request struct {
	Filename   string    // Used to pick the extractor and title the document
	Source     io.Reader // Raw document bytes
	OutputPath string    // Dataset destination; replaced on success
	Segment    segment.Options

	// OnPhase, if set, is called as the run enters extracting, segmenting
	// and writing.
	OnPhase func(JobStatus)
	// Lock, if set, is held around the dataset write.
	Lock func(path string) (unlock func())
}

func (req Request) enter(phase JobStatus) {
	if req.OnPhase != nil {
		req.OnPhase(phase)
	}
}

// Summary reports what a run produced.
type Summary struct {
	Title        string        `json:"title"`
	Pages        int           `json:"pages"`
	TextBytes    int           `json:"text_bytes"`
	AnchorFound  bool          `json:"anchor_found"`
	SkippedBytes int           `json:"skipped_bytes"`
	Boundaries   int           `json:"boundaries"`
	Records      int           `json:"records"`
	OutputPath   string        `json:"output_path"`
	ExtractTime  time.Duration `json:"-"`
}

// Runner executes extract, segment and write for a single document.
type Runner struct {
	parserOpts parser.Options
	stats      *ExtractStats
}

// NewRunner creates a Runner. stats may be nil.
func NewRunner(opts parser.Options, stats *ExtractStats) *Runner {
	return &Runner{parserOpts: opts, stats: stats}
}

// Extract decodes the document into text. This is the only step that waits on
// anything outside the process.
func (r *Runner) Extract(ctx context.Context, filename string, src io.Reader) (*document.RawDocument, error) {
	ex, err := parser.ForFile(filename, r.parserOpts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := ex.Extract(ctx, src, filename)
	if r.stats != nil {
		r.stats.Record(time.Since(start))
	}
	return doc, err
}

// Run extracts the document, segments it and writes the dataset. Nothing is
// written unless extraction succeeds.
func (r *Runner) Run(ctx context.Context, req Request) (Summary, error) {
	seg, err := segment.New(req.Segment)
	if err != nil {
		return Summary{}, err
	}

	req.enter(StatusExtracting)
	start := time.Now()
	doc, err := r.Extract(ctx, req.Filename, req.Source)
	if err != nil {
		return Summary{}, fmt.Errorf("extract %s: %w", req.Filename, err)
	}
	extractTime := time.Since(start)

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	req.enter(StatusSegmenting)
	res := seg.Segment(doc.Text)

	req.enter(StatusWriting)
	if req.Lock != nil {
		unlock := req.Lock(req.OutputPath)
		err = dataset.Write(req.OutputPath, res.Records)
		unlock()
	} else {
		err = dataset.Write(req.OutputPath, res.Records)
	}
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Title:        doc.Title,
		Pages:        doc.PageCount,
		TextBytes:    doc.Len(),
		AnchorFound:  res.AnchorFound,
		SkippedBytes: res.SkippedBytes,
		Boundaries:   res.Boundaries,
		Records:      len(res.Records),
		OutputPath:   req.OutputPath,
		ExtractTime:  extractTime,
	}, nil
}
