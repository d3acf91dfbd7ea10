package store

import (
	"context"
	dbsql "database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/store/sqlite"
)

// sqlAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
// it also emits query trace events when a tracer is configured on sqlite.DB
type sqlAdapter struct {
	d *sqlite.DB
}

func newSQLAdapter(d *sqlite.DB) *sqlAdapter { return &sqlAdapter{d: d} }

func (a *sqlAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("sqlite: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *sqlAdapter) Close() error { a.d.Close(); return nil }

func (a *sqlAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := a.d.SQL.ExecContext(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	return tag{res}, err
}

func (a *sqlAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.d.SQL.QueryContext(ctx, sql, args...)
	// emit on open; if you want end-to-end timing across scan, wrap Close and emit there instead
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (a *sqlAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.d.SQL.QueryRowContext(ctx, sql, args...)
	// wrap to emit after Scan completes, capturing error from Scan
	return row{
		r: r,
		after: func(scanErr error) {
			a.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (a *sqlAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := txQuerier{
		tx:     tx,
		tracer: a.d.Tracer,
		slowUS: int64(a.d.SlowMs) * 1000,
	}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// emit sends a query event to the configured tracer
func (a *sqlAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if a == nil || a.d == nil || a.d.Tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := a.d.SlowMs >= 0 && elapsedUS >= int64(a.d.SlowMs)*1000
	a.d.Tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

// adapters for database/sql to our tiny Row/Rows/CommandTag

type row struct {
	r     *dbsql.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r *dbsql.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { _ = x.r.Close() }
func (x rows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// wrap sql.Result so we satisfy our CommandTag interface
type tag struct{ res dbsql.Result }

func (t tag) String() string {
	n := t.RowsAffected()
	return fmt.Sprintf("ROWS %d", n)
}

func (t tag) RowsAffected() int64 {
	if t.res == nil {
		return 0
	}
	n, err := t.res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

// txQuerier uses *sql.Tx to satisfy RowQuerier inside a Tx
// it mirrors sqlAdapter emit behavior so queries inside transactions are also traced
type txQuerier struct {
	tx     *dbsql.Tx
	tracer sqlite.QueryTracer
	slowUS int64
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	return tag{res}, err
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.QueryContext(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRowContext(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			t.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (t txQuerier) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := t.slowUS >= 0 && elapsedUS >= t.slowUS
	t.tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}
