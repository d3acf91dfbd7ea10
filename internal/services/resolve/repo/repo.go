// Package repo provides the resolve repository over the embedded credential store
package repo

import (
	"context"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/repokit"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/store"

	"github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
)

// Repo is the resolve persistence surface used by the service layer
type Repo interface {
	// EnsureSchema creates the credential tables when missing
	EnsureSchema(ctx context.Context) error

	// GetCredential returns the provisioned credential for identity,
	// or ErrNotFound
	GetCredential(ctx context.Context, identity string) (domain.Credential, error)

	// InsertCredential inserts a credential if absent. Returns true
	// when a new row was written, false when the identity already had
	// one; either way the stored row wins.
	InsertCredential(ctx context.Context, cred domain.Credential) (bool, error)

	// GetOrCreateDeviceSecret returns the persisted device secret,
	// storing the candidate on first use
	GetOrCreateDeviceSecret(ctx context.Context, candidate []byte) ([]byte, error)
}

type (
	// SQLite is the embedded implementation of the resolve repo
	SQLite  struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQLite returns a binder for the embedded implementation
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind attaches a Queryer to the embedded implementation
func (SQLite) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS facial_credentials (
			identity   TEXT PRIMARY KEY,
			email      TEXT NOT NULL,
			password   TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS device_secret (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			secret     BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
	`
	if _, err := r.q.Exec(ctx, ddl); err != nil {
		return perr.MapSQLite(err, "ensure schema failed")
	}
	return nil
}

func (r *queries) GetCredential(ctx context.Context, identity string) (domain.Credential, error) {
	const sql = `
		SELECT identity, email, password, created_at
		FROM facial_credentials
		WHERE identity = ?
	`
	var c domain.Credential
	var createdAt int64
	err := r.q.QueryRow(ctx, sql, identity).Scan(&c.Identity, &c.Email, &c.Password, &createdAt)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Credential{}, perr.NotFoundf("no credential for %s", identity)
		}
		return domain.Credential{}, perr.MapSQLite(err, "get credential failed")
	}
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return c, nil
}

func (r *queries) InsertCredential(ctx context.Context, cred domain.Credential) (bool, error) {
	const sql = `
		INSERT INTO facial_credentials (identity, email, password, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (identity) DO NOTHING
	`
	createdAt := cred.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	tag, err := r.q.Exec(ctx, sql, cred.Identity, cred.Email, cred.Password, createdAt.Unix())
	if err != nil {
		return false, perr.MapSQLite(err, "insert credential failed")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) GetOrCreateDeviceSecret(ctx context.Context, candidate []byte) ([]byte, error) {
	const insert = `
		INSERT INTO device_secret (id, secret, created_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, candidate, time.Now().Unix()); err != nil {
		return nil, perr.MapSQLite(err, "store device secret failed")
	}

	secret, err := store.Scalar[[]byte](ctx, r.q, `SELECT secret FROM device_secret WHERE id = 1`)
	if err != nil {
		return nil, perr.MapSQLite(err, "load device secret failed")
	}
	if len(secret) == 0 {
		return nil, perr.DBf("device secret row is empty")
	}
	return secret, nil
}
