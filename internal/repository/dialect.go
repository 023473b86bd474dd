package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures what differs between the SQL backends: the driver name,
// the DDL, the placeholder style and how a unique violation is reported.
type Dialect struct {
	Name   string
	Driver string
	Schema []string

	positional bool
	unique     func(error) bool
}

var placeholder = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $N placeholders for drivers that only take "?".
func (d Dialect) Rebind(query string) string {
	if !d.positional {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

// IsUniqueViolation reports whether err is the backend's unique-key error.
func (d Dialect) IsUniqueViolation(err error) bool {
	return err != nil && d.unique(err)
}

var Postgres = Dialect{
	Name:   "postgres",
	Driver: "pgx",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email) WHERE email <> ''`,
		`CREATE TABLE IF NOT EXISTS subdomains (
			owner_id TEXT PRIMARY KEY,
			label TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY,
			owner_id TEXT,
			namespace TEXT NOT NULL,
			short_code TEXT NOT NULL,
			original_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ,
			click_count BIGINT NOT NULL DEFAULT 0,
			UNIQUE (namespace, short_code)
		)`,
		`CREATE INDEX IF NOT EXISTS links_owner_idx ON links (owner_id)`,
		`CREATE INDEX IF NOT EXISTS links_expires_idx ON links (expires_at) WHERE expires_at IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS click_events (
			id TEXT PRIMARY KEY,
			link_id TEXT NOT NULL,
			ip_address TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			browser TEXT NOT NULL,
			platform TEXT NOT NULL,
			clicked_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS click_events_link_idx ON click_events (link_id, clicked_at DESC)`,
	},
	unique: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
	},
}

// SQLite serves both local modernc databases and remote libsql ones.
var SQLite = Dialect{
	Name:   "sqlite",
	Driver: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email) WHERE email <> ''`,
		`CREATE TABLE IF NOT EXISTS subdomains (
			owner_id TEXT PRIMARY KEY,
			label TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY,
			owner_id TEXT,
			namespace TEXT NOT NULL,
			short_code TEXT NOT NULL,
			original_url TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			expires_at DATETIME,
			click_count INTEGER NOT NULL DEFAULT 0,
			UNIQUE (namespace, short_code)
		)`,
		`CREATE INDEX IF NOT EXISTS links_owner_idx ON links (owner_id)`,
		`CREATE INDEX IF NOT EXISTS links_expires_idx ON links (expires_at) WHERE expires_at IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS click_events (
			id TEXT PRIMARY KEY,
			link_id TEXT NOT NULL,
			ip_address TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			browser TEXT NOT NULL,
			platform TEXT NOT NULL,
			clicked_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS click_events_link_idx ON click_events (link_id, clicked_at DESC)`,
	},
	positional: true,
	unique: func(err error) bool {
		var se *sqlite.Error
		if errors.As(err, &se) {
			switch se.Code() {
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				return true
			}
		}
		// libsql reports constraint failures as plain text
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	},
}

// LibSQL is SQLite spoken over the libsql client.
var LibSQL = func() Dialect {
	d := SQLite
	d.Name = "libsql"
	d.Driver = "libsql"
	return d
}()
