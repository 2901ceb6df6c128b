package store

import (
	"context"
	"errors"
	"io"
	"path/filepath"
)

// ErrNotFound reports that no run with the requested identifier exists. It
// is distinct from ErrUnavailable: the backend answered, the run is absent.
var ErrNotFound = errors.New("store: run not found")

// ErrUnavailable reports that the persistence backend itself cannot be
// reached. Callers treat it as a warning: a run is still valid even when it
// could not be saved.
var ErrUnavailable = errors.New("store: storage unavailable")

// Store persists completed runs and serves them back for listing and
// re-rendering. Implementations: KuzuStore (durable, cgo), FileStore
// (durable, JSON files), MemoryStore (testing).
type Store interface {
	io.Closer

	// Init prepares the backend, creating schema or directories. Called
	// once before any other operation.
	Init(ctx context.Context) error

	// SaveRun persists one run record, replacing any record with the same
	// identifier.
	SaveRun(ctx context.Context, rec *RunRecord) error

	// LoadRun returns the record for one run, or ErrNotFound.
	LoadRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns returns summaries of all persisted runs, newest first.
	ListRuns(ctx context.Context) ([]RunSummary, error)
}

// Open selects the best available backend under dataDir: the embedded graph
// database when the build supports it, otherwise plain JSON files. The
// fallback keeps persistence working in cgo-free builds and on hosts where
// the database cannot open its directory.
func Open(ctx context.Context, dataDir string) (Store, error) {
	if ks, err := NewKuzuStore(filepath.Join(dataDir, "blueprint.kuzu")); err == nil {
		if err := ks.Init(ctx); err == nil {
			return ks, nil
		}
		ks.Close()
	}

	fs := NewFileStore(dataDir)
	if err := fs.Init(ctx); err != nil {
		return nil, err
	}
	return fs, nil
}
