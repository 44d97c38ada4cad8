package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/qaseg/internal/dataset"
	"github.com/dgallion1/qaseg/internal/parser"
	"github.com/dgallion1/qaseg/internal/pipeline"
	"github.com/dgallion1/qaseg/internal/segment"
)

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = pipeline.ContentHashHex(data)[:16]
	}
	if !dataset.ValidDocID(docID) {
		jsonError(w, "doc_id may only contain letters, digits, '.', '_' and '-'", http.StatusBadRequest)
		return
	}

	opts := s.cfg.SegmentOptions()
	if _, ok := r.MultipartForm.Value["anchor"]; ok {
		// An explicit empty anchor disables front-matter skipping.
		opts.Anchor = r.FormValue("anchor")
	}
	if v := r.FormValue("pattern"); v != "" {
		opts.Pattern = v
	}
	if _, err := segment.NewScanner(opts.Pattern); err != nil {
		jsonError(w, "invalid pattern: "+err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(docID, filename, data, opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":      job.ID,
		"doc_id":      job.DocID,
		"status":      job.Snapshot().Status,
		"poll_url":    fmt.Sprintf("/api/segment/%s/status", job.ID),
		"dataset_url": fmt.Sprintf("/api/datasets/%s", job.DocID),
	})
}

func (s *Server) handleSegmentStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleListDatasets lists the datasets written so far.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := dataset.List(s.cfg.DataDir)
	if err != nil {
		jsonError(w, "failed to list datasets: "+err.Error(), http.StatusInternalServerError)
		return
	}
	// Paths are server-local.
	for i := range infos {
		infos[i].Path = ""
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"datasets": infos})
}

// handleGetDataset returns a dataset file exactly as written.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !dataset.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	path := s.orchestrator.DatasetPath(docID)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "dataset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to open dataset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		jsonError(w, "failed to stat dataset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	http.ServeContent(w, r, filepath.Base(path), fi.ModTime(), f)
}

// handleDeleteDataset removes a dataset file.
func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !dataset.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	err := s.orchestrator.RemoveDataset(docID)
	if errors.Is(err, dataset.ErrNotFound) {
		jsonError(w, "dataset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
