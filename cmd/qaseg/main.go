// Package main is the entry point for the qaseg CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/qaseg/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "qaseg",
	Short: "Turn question-and-answer documents into JSON datasets",
	Long: `qaseg extracts text from a document (PDF, DOCX, HTML, Markdown, CSV or plain
text), skips the front matter before a content anchor, splits the body on
numbered question markers and writes the question/answer pairs as a JSON array.

Settings come from the environment; see "qaseg serve --help" for the HTTP
service.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// loadConfig reads the environment and validates the shared settings.
func loadConfig() (config.Config, error) {
	cfg := config.Load()
	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		newLogger().Error("qaseg failed", "error", err)
		os.Exit(1)
	}
}
