package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/qaseg/internal/parser"
	"github.com/dgallion1/qaseg/internal/pipeline"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Split a document into a question/answer dataset",
	Long: `Segment extracts the document, drops everything before the content anchor,
pairs each question marker with the text up to the next marker and writes the
records to a JSON file. The output is replaced only when extraction succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().StringP("out", "o", "", "dataset path (default $OUTPUT_FILE)")
	segmentCmd.Flags().String("anchor", "", "content anchor (default $CONTENT_ANCHOR; empty disables skipping)")
	segmentCmd.Flags().String("pattern", "", "question marker regex with ordinal and question groups (default $MARKER_PATTERN)")
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	opts := cfg.SegmentOptions()
	if cmd.Flags().Changed("anchor") {
		opts.Anchor, _ = cmd.Flags().GetString("anchor")
	}
	if cmd.Flags().Changed("pattern") {
		opts.Pattern, _ = cmd.Flags().GetString("pattern")
	}
	out := cfg.OutputFile
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		out = v
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	runner := pipeline.NewRunner(parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}, nil)
	sum, err := runner.Run(cmd.Context(), pipeline.Request{
		Filename:   path,
		Source:     f,
		OutputPath: out,
		Segment:    opts,
	})
	if err != nil {
		return err
	}

	if opts.Anchor != "" && !sum.AnchorFound {
		log.Warn("content anchor not found, scanned whole document", "anchor", opts.Anchor)
	}
	if sum.Records == 0 {
		log.Warn("no question markers found", "pattern", opts.Pattern)
	}
	log.Info("dataset written",
		"file", path,
		"output", sum.OutputPath,
		"pages", sum.Pages,
		"anchor_found", sum.AnchorFound,
		"records", sum.Records,
		"extract_ms", sum.ExtractTime.Milliseconds(),
	)
	return nil
}
