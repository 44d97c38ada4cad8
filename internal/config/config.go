package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/qaseg/internal/segment"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Output
	DataDir    string // Where the HTTP service writes one dataset per document
	OutputFile string // Default dataset path for the CLI

	// Segmentation
	ContentAnchor string
	MarkerPattern string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("QASEG_API_KEY"),

		DataDir:    envOr("DATA_DIR", "data"),
		OutputFile: envOr("OUTPUT_FILE", "data/questions.json"),

		ContentAnchor: envLookup("CONTENT_ANCHOR", segment.DefaultAnchor), // set but empty disables skipping
		MarkerPattern: envOr("MARKER_PATTERN", segment.DefaultPattern),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// SegmentOptions returns the configured segmentation settings.
func (c Config) SegmentOptions() segment.Options {
	return segment.Options{
		Anchor:  c.ContentAnchor,
		Pattern: c.MarkerPattern,
	}
}

// Validate checks settings shared by every command.
func (c Config) Validate() error {
	if _, err := segment.NewScanner(c.MarkerPattern); err != nil {
		return fmt.Errorf("MARKER_PATTERN: %w", err)
	}
	return nil
}

// ValidateServer checks the settings the HTTP service needs on top of Validate.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("QASEG_API_KEY is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envLookup is envOr for settings where an empty value is meaningful.
func envLookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
