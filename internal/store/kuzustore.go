//go:build cgo

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore persists runs in an embedded KuzuDB database. It requires CGO
// because the go-kuzu driver wraps KuzuDB's C library; cgo-free builds fall
// back to FileStore through Open.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore opens a file-backed KuzuDB at dbPath. KuzuDB creates the
// leaf directory itself for new databases.
func NewKuzuStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create parent directory: %v: %w", err, ErrUnavailable)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %v: %w", err, ErrUnavailable)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open connection: %v: %w", err, ErrUnavailable)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// Runs are stored whole: the queryable listing columns plus the full record
// as a JSON blob, so the schema never chases the record shape.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Run(
		id STRING,
		status STRING,
		headline STRING,
		started_at STRING,
		record STRING,
		PRIMARY KEY(id)
	)`,
}

// Init creates the Run table if it does not exist.
func (s *KuzuStore) Init(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("store: init schema: %v: %w", err, ErrUnavailable)
		}
		res.Close()
	}
	return nil
}

// ---------- Operations ----------

// SaveRun upserts one run record.
func (s *KuzuStore) SaveRun(_ context.Context, rec *RunRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode run %s: %w", rec.ID, err)
	}
	summary := rec.Summary()
	return s.exec(
		`MERGE (r:Run {id: $id})
		 SET r.status = $status,
		     r.headline = $headline,
		     r.started_at = $started,
		     r.record = $record`,
		map[string]any{
			"id":       rec.ID,
			"status":   summary.Status,
			"headline": summary.Headline,
			"started":  rec.StartedAt.UTC().Format(time.RFC3339Nano),
			"record":   string(blob),
		},
	)
}

// LoadRun returns one run record, or ErrNotFound.
func (s *KuzuStore) LoadRun(_ context.Context, id string) (*RunRecord, error) {
	rows, err := s.query(
		"MATCH (r:Run {id: $id}) RETURN r.record",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("store: run %s: %w", id, ErrNotFound)
	}
	var rec RunRecord
	if err := json.Unmarshal([]byte(toString(rows[0][0])), &rec); err != nil {
		return nil, fmt.Errorf("store: decode run %s: %w", id, err)
	}
	return &rec, nil
}

// ListRuns returns summaries of all runs, newest first.
func (s *KuzuStore) ListRuns(_ context.Context) ([]RunSummary, error) {
	rows, err := s.query(
		`MATCH (r:Run)
		 RETURN r.id, r.status, r.headline, r.started_at
		 ORDER BY r.started_at DESC`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, 0, len(rows))
	for _, r := range rows {
		started, _ := time.Parse(time.RFC3339Nano, toString(r[3]))
		out = append(out, RunSummary{
			ID:        toString(r[0]),
			Status:    toString(r[1]),
			Headline:  toString(r[2]),
			StartedAt: started,
		})
	}
	return out, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("store: prepare: %v: %w", err, ErrUnavailable)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("store: execute: %v: %w", err, ErrUnavailable)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("store: prepare: %v: %w", err, ErrUnavailable)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("store: query: %v: %w", err, ErrUnavailable)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("store: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("store: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
