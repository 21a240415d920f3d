// Package journal records completed funge runs in a SQLite database.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound indicates the requested run doesn't exist
var ErrRunNotFound = errors.New("run not found")

// Run is one journal entry.
type Run struct {
	ID         string
	Program    string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      uint64
	Output     string
	Err        string // empty when the program halted normally
	Snapshot   []byte // CBOR snapshot of the final interpreter state
}

// Journal handles SQLite storage for runs
type Journal struct {
	db  *sql.DB
	log commonlog.Logger
	mu  sync.Mutex
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		output TEXT NOT NULL,
		error TEXT NOT NULL,
		snapshot BLOB
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	j := &Journal{db: db, log: commonlog.GetLogger("funge.journal")}
	j.log.Debugf("opened %s", path)
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record stores r, replacing any earlier entry with the same ID.
func (j *Journal) Record(ctx context.Context, r *Run) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
			(id, program, started_at, finished_at, steps, output, error, snapshot)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Program, r.StartedAt.UnixNano(), r.FinishedAt.UnixNano(),
		int64(r.Steps), r.Output, r.Err, r.Snapshot,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", r.ID, err)
	}
	j.log.Infof("recorded run %s (%s, %d steps)", r.ID, r.Program, r.Steps)
	return nil
}

const selectRun = `SELECT id, program, started_at, finished_at, steps, output, error, snapshot FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		r                 Run
		started, finished int64
		steps             int64
	)
	if err := s.Scan(&r.ID, &r.Program, &started, &finished, &steps, &r.Output, &r.Err, &r.Snapshot); err != nil {
		return nil, err
	}
	r.StartedAt = time.Unix(0, started)
	r.FinishedAt = time.Unix(0, finished)
	r.Steps = uint64(steps)
	return &r, nil
}

// Get retrieves a run by ID.
func (j *Journal) Get(ctx context.Context, id string) (*Run, error) {
	r, err := scanRun(j.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("querying run: %w", err)
	}
	return r, nil
}

// Recent returns up to n runs, most recently started first.
func (j *Journal) Recent(ctx context.Context, n int) ([]*Run, error) {
	rows, err := j.db.QueryContext(ctx, selectRun+" ORDER BY started_at DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
