//go:build !cgo

package store

import "fmt"

// NewKuzuStore is unavailable without CGO; Open falls back to FileStore.
func NewKuzuStore(dbPath string) (Store, error) {
	return nil, fmt.Errorf("store: kuzu backend requires cgo: %w", ErrUnavailable)
}
