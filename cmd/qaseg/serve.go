package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/qaseg/internal/api"
	"github.com/dgallion1/qaseg/internal/config"
	"github.com/dgallion1/qaseg/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP segmentation service",
	Long: `Serve accepts document uploads on POST /api/segment, processes them on a worker
pool and stores one dataset per document under $DATA_DIR.

Environment: PORT, QASEG_API_KEY (required), DATA_DIR, CONTENT_ANCHOR,
MARKER_PATTERN, WORKER_COUNT, MAX_QUEUE_SIZE, MAX_UPLOAD_BYTES, JOB_TTL,
PDF_FALLBACK_PDFTOTEXT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(orch, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting qaseg", "port", cfg.Port, "data_dir", cfg.DataDir, "workers", cfg.WorkerCount)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		orch.Stop()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	orch.Stop()
	return nil
}
