package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// DialectFor picks the dialect for a DSN: libsql:// and wss:// go to libsql,
// anything that looks like a postgres URL or keyword DSN goes to pgx, the
// rest is treated as a local SQLite file.
func DialectFor(dsn string) Dialect {
	switch {
	case strings.HasPrefix(dsn, "libsql://"), strings.HasPrefix(dsn, "wss://"):
		return LibSQL
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return Postgres
	}
	return SQLite
}

// sqliteParams are added to local SQLite DSNs that do not set them. Writers
// wait on a busy database instead of failing with SQLITE_BUSY, and every
// transaction takes the write lock up front, so a read-then-write transaction
// cannot deadlock against another one upgrading its lock.
var sqliteParams = []struct{ key, value string }{
	{"_time_format", "sqlite"},
	{"_txlock", "immediate"},
	{"_pragma=busy_timeout", "busy_timeout(5000)"},
	{"_pragma=journal_mode", "journal_mode(WAL)"},
}

func sqliteDSN(dsn string) string {
	for _, p := range sqliteParams {
		if strings.Contains(dsn, p.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		key, _, _ := strings.Cut(p.key, "=")
		dsn += sep + key + "=" + p.value
	}
	return dsn
}

// InitDB opens the database, checks connectivity and applies the schema.
func InitDB(ctx context.Context, d Dialect, dsn string, logger *zap.Logger) (*sql.DB, error) {
	if d.Driver == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	for _, stmt := range d.Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	logger.Info("database ready", zap.String("dialect", d.Name))
	return db, nil
}

const linkColumns = `id, owner_id, namespace, short_code, original_url, created_at, expires_at, click_count`

// LinkRepository is the SQL implementation of the registry store.
type LinkRepository struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

func CreateLinkRepository(db *sql.DB, d Dialect, logger *zap.Logger) *LinkRepository {
	return &LinkRepository{
		db:      db,
		dialect: d,
		logger:  logger,
	}
}

func (r *LinkRepository) exec(ctx context.Context, q execer, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *LinkRepository) query(ctx context.Context, q execer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *LinkRepository) queryRow(ctx context.Context, q execer, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, r.dialect.Rebind(query), args...)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// inTx runs fn in a transaction and commits when fn returns nil.
func (r *LinkRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	return tx.Commit()
}

func (r *LinkRepository) conflictOr(err error) error {
	if r.dialect.IsUniqueViolation(err) {
		return storage.ErrConflict
	}
	return err
}

// --- users ---

func (r *LinkRepository) EnsureUser(ctx context.Context, u storage.User) (*storage.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := r.exec(ctx, r.db,
		`INSERT INTO users (id, name, email, is_admin, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
		u.ID, u.Name, u.Email, u.IsAdmin, u.CreatedAt,
	)
	if err != nil {
		return nil, r.conflictOr(err)
	}

	return r.FindUser(ctx, u.ID)
}

func (r *LinkRepository) FindUser(ctx context.Context, id string) (*storage.User, error) {
	var u storage.User
	err := r.queryRow(ctx, r.db,
		`SELECT id, name, email, is_admin, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *LinkRepository) UpdateUserName(ctx context.Context, id, name string) (*storage.User, error) {
	res, err := r.exec(ctx, r.db, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, storage.ErrNotFound
	}

	return r.FindUser(ctx, id)
}

// DeleteUser removes the user and everything the user owns.
func (r *LinkRepository) DeleteUser(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.exec(ctx, tx, `DELETE FROM click_events WHERE link_id IN (SELECT id FROM links WHERE owner_id = $1)`, id); err != nil {
			return err
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM links WHERE owner_id = $1`, id); err != nil {
			return err
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM subdomains WHERE owner_id = $1`, id); err != nil {
			return err
		}

		res, err := r.exec(ctx, tx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
}

func (r *LinkRepository) CountUsers(ctx context.Context, search string) (int, error) {
	where, args := userWhere(search)

	var n int
	err := r.queryRow(ctx, r.db, `SELECT COUNT(*) FROM users`+where, args...).Scan(&n)
	return n, err
}

func (r *LinkRepository) ListUsers(ctx context.Context, search string, offset, limit int) ([]storage.User, error) {
	where, args := userWhere(search)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT id, name, email, is_admin, created_at FROM users%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.query(ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]storage.User, 0)
	for rows.Next() {
		var u storage.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func userWhere(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	pattern := likePattern(search)
	return ` WHERE LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(email) LIKE $2 ESCAPE '\'`, []any{pattern, pattern}
}

// --- subdomains ---

// BindSubdomain claims the label. The unique index on label is the claim;
// the lookups before it only make a repeated bind by the holder idempotent.
func (r *LinkRepository) BindSubdomain(ctx context.Context, sd storage.Subdomain) (*storage.Subdomain, error) {
	if sd.CreatedAt.IsZero() {
		sd.CreatedAt = time.Now().UTC()
	}

	var result *storage.Subdomain
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		holder, err := r.subdomainBy(ctx, tx, "label", sd.Label)
		switch {
		case err == nil && holder.OwnerID != sd.OwnerID:
			return storage.ErrConflict
		case err == nil:
			result = holder
			return nil
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		old, err := r.subdomainBy(ctx, tx, "owner_id", sd.OwnerID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			_, err = r.exec(ctx, tx,
				`INSERT INTO subdomains (owner_id, label, created_at) VALUES ($1, $2, $3)`,
				sd.OwnerID, sd.Label, sd.CreatedAt,
			)
			if err != nil {
				return r.conflictOr(err)
			}
		case err != nil:
			return err
		default:
			_, err = r.exec(ctx, tx,
				`UPDATE subdomains SET label = $1, created_at = $2 WHERE owner_id = $3`,
				sd.Label, sd.CreatedAt, sd.OwnerID,
			)
			if err != nil {
				return r.conflictOr(err)
			}
			_, err = r.exec(ctx, tx,
				`UPDATE links SET namespace = $1 WHERE owner_id = $2 AND namespace = $3`,
				sd.Label, sd.OwnerID, old.Label,
			)
			if err != nil {
				return r.conflictOr(err)
			}
		}

		result = &sd
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UnbindSubdomain releases the label and moves its links to tombstone
// namespaces (see storage.OrphanNamespace).
func (r *LinkRepository) UnbindSubdomain(ctx context.Context, ownerID string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		sd, err := r.subdomainBy(ctx, tx, "owner_id", ownerID)
		if err != nil {
			return err
		}

		_, err = r.exec(ctx, tx,
			`UPDATE links SET namespace = '!' || id WHERE owner_id = $1 AND namespace = $2`,
			ownerID, sd.Label,
		)
		if err != nil {
			return err
		}

		_, err = r.exec(ctx, tx, `DELETE FROM subdomains WHERE owner_id = $1`, ownerID)
		return err
	})
}

func (r *LinkRepository) FindSubdomainByOwner(ctx context.Context, ownerID string) (*storage.Subdomain, error) {
	return r.subdomainBy(ctx, r.db, "owner_id", ownerID)
}

func (r *LinkRepository) FindSubdomainByLabel(ctx context.Context, label string) (*storage.Subdomain, error) {
	return r.subdomainBy(ctx, r.db, "label", label)
}

// subdomainBy looks a subdomain up by one of its unique columns.
func (r *LinkRepository) subdomainBy(ctx context.Context, q execer, column, value string) (*storage.Subdomain, error) {
	var sd storage.Subdomain
	err := r.queryRow(ctx, q,
		`SELECT owner_id, label, created_at FROM subdomains WHERE `+column+` = $1`, value,
	).Scan(&sd.OwnerID, &sd.Label, &sd.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sd, nil
}

// --- links ---

// CreateLink inserts the link; the (namespace, short_code) unique key makes
// the insert the claim.
func (r *LinkRepository) CreateLink(ctx context.Context, l storage.Link) (*storage.Link, error) {
	// SQLite compares timestamps as text, which only orders within one offset
	l.CreatedAt = l.CreatedAt.UTC()
	if l.ExpiresAt != nil {
		exp := l.ExpiresAt.UTC()
		l.ExpiresAt = &exp
	}

	_, err := r.exec(ctx, r.db,
		`INSERT INTO links (`+linkColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, nullString(l.OwnerID), l.Namespace, l.ShortCode, l.OriginalURL, l.CreatedAt, l.ExpiresAt, l.Clicks,
	)
	if err != nil {
		return nil, r.conflictOr(err)
	}

	return &l, nil
}

func (r *LinkRepository) FindLink(ctx context.Context, namespace, code string) (*storage.Link, error) {
	row := r.queryRow(ctx, r.db,
		`SELECT `+linkColumns+` FROM links WHERE namespace = $1 AND short_code = $2`, namespace, code)
	return scanLink(row)
}

func (r *LinkRepository) FindLinkByID(ctx context.Context, id string) (*storage.Link, error) {
	row := r.queryRow(ctx, r.db, `SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	return scanLink(row)
}

// UpdateLink is a single UPDATE, so a rename either claims the new code or
// leaves the old one bound.
func (r *LinkRepository) UpdateLink(ctx context.Context, id string, upd storage.LinkUpdate) (*storage.Link, error) {
	row := r.queryRow(ctx, r.db,
		`UPDATE links SET short_code = COALESCE($1, short_code), original_url = COALESCE($2, original_url) WHERE id = $3 RETURNING `+linkColumns,
		nullPtr(upd.ShortCode), nullPtr(upd.OriginalURL), id,
	)

	l, err := scanLink(row)
	if err != nil {
		return nil, r.conflictOr(err)
	}
	return l, nil
}

func (r *LinkRepository) DeleteLink(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.exec(ctx, tx, `DELETE FROM click_events WHERE link_id = $1`, id); err != nil {
			return err
		}

		res, err := r.exec(ctx, tx, `DELETE FROM links WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
}

func (r *LinkRepository) CountLinks(ctx context.Context, f storage.LinkFilter) (int, error) {
	where, args := linkWhere(f)

	var n int
	err := r.queryRow(ctx, r.db, `SELECT COUNT(*) FROM links`+where, args...).Scan(&n)
	return n, err
}

func (r *LinkRepository) ListLinks(ctx context.Context, f storage.LinkFilter, offset, limit int) ([]storage.Link, error) {
	where, args := linkWhere(f)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT %s FROM links%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		linkColumns, where, len(args)-1, len(args))

	rows, err := r.query(ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]storage.Link, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}

	return links, rows.Err()
}

func linkWhere(f storage.LinkFilter) (string, []any) {
	var conds []string
	var args []any

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		args = append(args, pattern, pattern)
		conds = append(conds, fmt.Sprintf(`(LOWER(short_code) LIKE $%d ESCAPE '\' OR LOWER(original_url) LIKE $%d ESCAPE '\')`, len(args)-1, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// DeleteExpired removes links whose expiry is at or before now, with the same
// predicate as storage.Link.Expired.
func (r *LinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()

	var n int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := r.exec(ctx, tx,
			`DELETE FROM click_events WHERE link_id IN (SELECT id FROM links WHERE expires_at IS NOT NULL AND expires_at <= $1)`, now)
		if err != nil {
			return err
		}

		res, err := r.exec(ctx, tx, `DELETE FROM links WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	return int(n), err
}

// --- clicks ---

// AppendClicks bumps the counter of each event's link and stores the event.
// A link that is gone makes the UPDATE touch no row, and the event is skipped.
func (r *LinkRepository) AppendClicks(ctx context.Context, events []storage.ClickEvent) (int, error) {
	stored := 0
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		stored = 0
		for _, e := range events {
			e.ClickedAt = e.ClickedAt.UTC()
			res, err := r.exec(ctx, tx, `UPDATE links SET click_count = click_count + 1 WHERE id = $1`, e.LinkID)
			if err != nil {
				return err
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				r.logger.Debug("click for missing link dropped", zap.String("link_id", e.LinkID))
				continue
			}

			_, err = r.exec(ctx, tx,
				`INSERT INTO click_events (id, link_id, ip_address, user_agent, browser, platform, clicked_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				e.ID, e.LinkID, e.IPAddress, e.UserAgent, e.Browser, e.Platform, e.ClickedAt,
			)
			if err != nil {
				return err
			}
			stored++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return stored, nil
}

func (r *LinkRepository) ClickSummary(ctx context.Context, linkID string, recent int) (*storage.ClickSummary, error) {
	if _, err := r.FindLinkByID(ctx, linkID); err != nil {
		return nil, err
	}

	summary := &storage.ClickSummary{
		Browsers: make([]storage.BrowserCount, 0),
		Recent:   make([]storage.ClickEvent, 0),
	}

	err := r.queryRow(ctx, r.db, `SELECT COUNT(*) FROM click_events WHERE link_id = $1`, linkID).Scan(&summary.TotalClicks)
	if err != nil {
		return nil, err
	}

	rows, err := r.query(ctx, r.db,
		`SELECT browser, COUNT(*) AS total FROM click_events WHERE link_id = $1 GROUP BY browser ORDER BY total DESC, browser ASC`, linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b storage.BrowserCount
		if err := rows.Scan(&b.Browser, &b.Total); err != nil {
			return nil, err
		}
		summary.Browsers = append(summary.Browsers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// collations differ between backends; byte order is the contract
	storage.SortBrowsers(summary.Browsers)

	recentRows, err := r.query(ctx, r.db,
		`SELECT id, link_id, ip_address, user_agent, browser, platform, clicked_at FROM click_events WHERE link_id = $1 ORDER BY clicked_at DESC, id DESC LIMIT $2`,
		linkID, recent)
	if err != nil {
		return nil, err
	}
	defer recentRows.Close()

	for recentRows.Next() {
		var e storage.ClickEvent
		if err := recentRows.Scan(&e.ID, &e.LinkID, &e.IPAddress, &e.UserAgent, &e.Browser, &e.Platform, &e.ClickedAt); err != nil {
			return nil, err
		}
		summary.Recent = append(summary.Recent, e)
	}

	return summary, recentRows.Err()
}

func (r *LinkRepository) GetStats(ctx context.Context) (*storage.Stats, error) {
	var s storage.Stats
	err := r.queryRow(ctx, r.db, `SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM links)`).Scan(&s.Users, &s.Links)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LinkRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *LinkRepository) Close() error {
	return r.db.Close()
}

// --- helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (*storage.Link, error) {
	var (
		l       storage.Link
		owner   sql.NullString
		expires sql.NullTime
	)

	err := s.Scan(&l.ID, &owner, &l.Namespace, &l.ShortCode, &l.OriginalURL, &l.CreatedAt, &expires, &l.Clicks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	l.OwnerID = owner.String
	if expires.Valid {
		t := expires.Time
		l.ExpiresAt = &t
	}
	return &l, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
