package store

import (
	"context"
	"fmt"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/store/sqlite"
)

// openSQLite opens the embedded db and wraps it with our sql adapter
func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqlite.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = sqlite.Tracer(s.Log)
	}

	db, err := sqlite.Open(sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		MaxConns:    cfg.SQLite.MaxConns,
		SlowMs:      cfg.SQLite.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	// Connection guardrails: ping with retry/backoff using the pool directly.
	// Embedded files open lazily; a locked WAL from a crashed process still
	// needs the same patience a remote backend would get.
	const (
		maxAttempts    = 20
		pingTimeout    = 3 * time.Second
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.SQL.PingContext(toCtx) // no adapter, no SQL trace line
		cancel()

		if lastErr == nil {
			a := newSQLAdapter(db) // publish adapter only after the pool is healthy
			s.DB = a
			return a, nil
		}
		if ctx.Err() != nil {
			db.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	db.Close()
	return nil, fmt.Errorf("sqlite ping failed after %d attempts: %w", maxAttempts, lastErr)
}
