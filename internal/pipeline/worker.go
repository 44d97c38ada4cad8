package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/dgallion1/qaseg/internal/dataset"
	"github.com/dgallion1/qaseg/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	runner  *Runner
	dataDir string
	locks   *pathLocks
	log     *slog.Logger
}

func NewWorker(runner *Runner, dataDir string, locks *pathLocks, log *slog.Logger) *Worker {
	return &Worker{
		runner:  runner,
		dataDir: dataDir,
		locks:   locks,
		log:     log,
	}
}

// Process runs extraction, segmentation and the dataset write for a job,
// mirroring each phase into the job status.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	data := job.FileData()
	job.releaseFileData()

	opts := job.Options()
	phase := "options"
	sum, err := w.runner.Run(ctx, Request{
		Filename:   job.Filename,
		Source:     bytes.NewReader(data),
		OutputPath: dataset.PathFor(w.dataDir, job.DocID),
		Segment:    opts,
		OnPhase: func(s JobStatus) {
			phase = string(s)
			job.SetStatus(s, phase)
		},
		Lock: w.locks.lock,
	})
	if err != nil {
		switch {
		case phase == "options":
			log.Error("invalid segment options", "error", err)
		case errors.Is(err, parser.ErrExtraction):
			log.Error("extraction failed", "error", err)
		case phase == string(StatusExtracting):
			log.Error("unsupported format", "error", err)
		default:
			log.Error("pipeline failed", "phase", phase, "error", err)
		}
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, phase)
		return
	}

	if opts.Anchor != "" && !sum.AnchorFound {
		log.Warn("content anchor not found, scanned full text", "anchor", opts.Anchor)
	}
	if sum.Records == 0 {
		log.Warn("no question markers found")
	}
	job.SetSummary(sum)
	log.Info("dataset written",
		"path", sum.OutputPath,
		"pages", sum.Pages,
		"records", sum.Records,
		"extract_ms", sum.ExtractTime.Milliseconds(),
	)
	job.SetStatus(StatusCompleted, "done")
}
