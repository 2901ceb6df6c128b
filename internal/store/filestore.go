package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore persists runs as one JSON document per run under
// <dataDir>/runs/. It needs no external services, so it is the fallback
// backend when the graph database cannot be opened.
type FileStore struct {
	dir string
}

// Compile-time check that FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dir: filepath.Join(dataDir, "runs")}
}

// Init creates the runs directory.
func (s *FileStore) Init(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: create runs directory: %v: %w", err, ErrUnavailable)
	}
	return nil
}

// Close is a no-op; files are closed per operation.
func (s *FileStore) Close() error { return nil }

// SaveRun writes the record atomically: a temp file in the same directory
// renamed over the final path, so a crash never leaves a torn record.
func (s *FileStore) SaveRun(_ context.Context, rec *RunRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode run %s: %w", rec.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, "run-*.tmp")
	if err != nil {
		return fmt.Errorf("store: write run %s: %v: %w", rec.ID, err, ErrUnavailable)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write run %s: %v: %w", rec.ID, err, ErrUnavailable)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write run %s: %v: %w", rec.ID, err, ErrUnavailable)
	}
	if err := os.Rename(tmp.Name(), s.runPath(rec.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write run %s: %v: %w", rec.ID, err, ErrUnavailable)
	}
	return nil
}

// LoadRun reads one run record. A missing file is ErrNotFound; anything
// else with the directory itself is ErrUnavailable.
func (s *FileStore) LoadRun(_ context.Context, id string) (*RunRecord, error) {
	data, err := os.ReadFile(s.runPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("store: run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("store: read run %s: %v: %w", id, err, ErrUnavailable)
	}
	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("store: decode run %s: %w", id, err)
	}
	return &rec, nil
}

// ListRuns scans the runs directory and returns summaries newest first.
// Unreadable or torn entries are skipped rather than failing the listing.
func (s *FileStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: list runs: %v: %w", err, ErrUnavailable)
	}

	var out []RunSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		rec, err := s.LoadRun(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, rec.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (s *FileStore) runPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}
