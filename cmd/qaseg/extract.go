package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/qaseg/internal/parser"
	"github.com/dgallion1/qaseg/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Dump the raw text of a document",
	Long: `Extract decodes a document and writes its plain text unchanged, so anchors and
marker patterns can be checked before segmenting.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("out", "o", "-", `where to write the text ("-" for stdout)`)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	out, _ := cmd.Flags().GetString("out")

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	runner := pipeline.NewRunner(parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}, nil)
	doc, err := runner.Extract(cmd.Context(), path, f)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	if err := writeText(out, cmd.OutOrStdout(), doc.Text); err != nil {
		return err
	}

	log.Info("extracted", "file", path, "title", doc.Title, "pages", doc.PageCount, "text_bytes", doc.Len())
	return nil
}

// writeText writes text to path, creating parent directories, or to stdout
// when path is empty or "-".
func writeText(path string, stdout io.Writer, text string) (err error) {
	if path == "" || path == "-" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
