// Package sqlite provides an embedded SQLite client over database/sql with optional query tracing
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, registers as "sqlite"
)

// Config configures the embedded database
type Config struct {
	Path        string
	BusyTimeout time.Duration
	MaxConns    int
	SlowMs      int
}

// DB is a sqlite client with pool and optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer QueryTracer
	SlowMs int
}

var openSQL = sql.Open // seam

// DSN builds the file DSN with the pragmas every pooled connection must carry.
// modernc applies _pragma per connection, so they belong in the DSN rather
// than a one-off Exec after open.
func DSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	// escape query-significant bytes only; slashes must survive for
	// absolute paths
	esc := strings.NewReplacer("?", "%3F", "#", "%23").Replace(path)
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		esc, busyTimeout.Milliseconds(),
	)
}

// Open creates a new DB client with the given config and optional tracer
func Open(cfg Config, tracer QueryTracer) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	db, err := openSQL("sqlite", DSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", cfg.Path, err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 4
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	return &DB{
		SQL:    db,
		Tracer: tracer,
		SlowMs: cfg.SlowMs,
	}, nil
}

// Close closes the underlying pool
func (d *DB) Close() {
	if d != nil && d.SQL != nil {
		_ = d.SQL.Close()
	}
}
