// Package sqlite implements ports.SessionRepository on an embedded SQLite
// database. Each session key is one row of the preferences table.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/bft-labs/distclient/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// DBFileName is the database file created by Open inside the session directory.
const DBFileName = "session.db"

const (
	keyToken      = "token"
	keyIsLoggedIn = "is_logged_in"
)

const upsertSQL = `INSERT INTO preferences (namespace, key, value) VALUES (?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`

// SessionRepository stores the session under one namespace.
type SessionRepository struct {
	db        *sql.DB
	namespace string
	owned     bool
}

// Open opens (creating if needed) <dir>/session.db and applies the schema.
func Open(ctx context.Context, dir, namespace string) (*SessionRepository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DBFileName))
	if err != nil {
		return nil, err
	}
	// Single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	r := &SessionRepository{db: db, namespace: namespace, owned: true}
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// NewSessionRepository wraps an existing database. The caller owns db and
// must call Migrate if the schema may be missing.
func NewSessionRepository(db *sql.DB, namespace string) *SessionRepository {
	return &SessionRepository{db: db, namespace: namespace}
}

// Migrate creates the preferences table if it does not exist.
func (r *SessionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Load reads both keys in one query.
func (r *SessionRepository) Load(ctx context.Context) (domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM preferences WHERE namespace = ? AND key IN (?, ?)`,
		r.namespace, keyToken, keyIsLoggedIn)
	if err != nil {
		return domain.Session{}, err
	}
	defer rows.Close()

	var s domain.Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Session{}, err
		}
		switch key {
		case keyToken:
			s.Token = value
		case keyIsLoggedIn:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return domain.Session{}, fmt.Errorf("decode %s: %w", keyIsLoggedIn, err)
			}
			s.IsLoggedIn = b
		}
	}
	return s, rows.Err()
}

// Save upserts both keys in one transaction.
func (r *SessionRepository) Save(ctx context.Context, s domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertSQL, r.namespace, keyToken, s.Token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertSQL, r.namespace, keyIsLoggedIn, strconv.FormatBool(s.IsLoggedIn)); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database if it was opened by Open.
func (r *SessionRepository) Close() error {
	if !r.owned {
		return nil
	}
	return r.db.Close()
}
