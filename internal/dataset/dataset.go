// Package dataset persists segmented records as a JSON array on disk.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/qaseg/internal/segment"
)

// ErrNotFound is returned when a dataset file does not exist.
var ErrNotFound = errors.New("dataset not found")

// Encode renders records as an indented JSON array. A nil slice encodes as [].
func Encode(records []segment.Record) ([]byte, error) {
	if records == nil {
		records = []segment.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path with records, creating parent directories
// as needed. The data goes to a temp file in the same directory first and is
// renamed into place, so a failed write leaves any previous file intact.
func Write(path string, records []segment.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".qaseg-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close dataset: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod dataset: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}

// Read loads a dataset written by Write.
func Read(path string) ([]segment.Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var records []segment.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Info describes a dataset file in a directory.
type Info struct {
	DocID      string    `json:"doc_id"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// List returns the datasets in dir, sorted by doc ID. A missing dir is empty.
func List(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}

	out := []Info{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			DocID:      strings.TrimSuffix(name, ".json"),
			Path:       filepath.Join(dir, name),
			SizeBytes:  fi.Size(),
			ModifiedAt: fi.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocID < out[j].DocID })
	return out, nil
}

var docIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidDocID reports whether id is safe to use as a dataset file name.
func ValidDocID(id string) bool {
	return docIDRe.MatchString(id) && !strings.Contains(id, "..")
}

// PathFor returns the dataset path for a document ID inside dir.
func PathFor(dir, docID string) string {
	return filepath.Join(dir, docID+".json")
}

// Remove deletes the dataset for docID in dir.
func Remove(dir, docID string) error {
	err := os.Remove(PathFor(dir, docID))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove dataset: %w", err)
	}
	return nil
}
