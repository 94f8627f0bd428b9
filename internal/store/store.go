// Package store persists contact submissions and privacy-conscious visitor
// metrics in SQLite.
package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/store/migrations"
)

// DefaultRetention is how long visitor rows are kept.
const DefaultRetention = 365 * 24 * time.Hour

// ErrNotConfigured is returned by methods on a nil store.
var ErrNotConfigured = errors.New("storage is not configured")

// VisitorMetric is one tracked page view. The client address is stored only
// as a salted hash.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat counts views of one path.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarises traffic and submissions for the admin dashboard.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalSubmissions int64           `json:"total_submissions"`
	TopPaths         []PathStat      `json:"top_paths"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Store provides SQLite-backed persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens and migrates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	// Visitor inserts run from background goroutines; keep a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	return s.db.PingContext(ctx)
}

// Record stores a contact submission. It satisfies contact.Sink.
func (s *Store) Record(ctx context.Context, sub contact.Submission) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if sub.ID == "" {
		return errors.New("submission id is required")
	}
	at := sub.SubmittedAt
	if at.IsZero() {
		at = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, email, subject, message, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Form.Name, sub.Form.Email, sub.Form.Subject, sub.Form.Message, at.UTC().UnixMilli(),
	)
	if err != nil {
		return errors.Wrap(err, "insert submission")
	}
	return nil
}

// ListSubmissions returns up to limit submissions, newest first.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]contact.Submission, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, submitted_at
		 FROM submissions
		 ORDER BY submitted_at DESC, id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]contact.Submission, 0)
	for rows.Next() {
		var sub contact.Submission
		var at int64
		if err := rows.Scan(&sub.ID, &sub.Form.Name, &sub.Form.Email, &sub.Form.Subject, &sub.Form.Message, &at); err != nil {
			return nil, errors.Wrap(err, "scan submission")
		}
		sub.SubmittedAt = time.UnixMilli(at).UTC()
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate submissions")
	}
	return out, nil
}

// TrackVisitor records a page view.
func (s *Store) TrackVisitor(ctx context.Context, hashedIP, userAgent, path string) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if hashedIP == "" {
		return errors.New("hashed ip is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		hashedIP, userAgent, path, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return errors.Wrap(err, "insert visitor")
	}
	return nil
}

// CleanupVisitors deletes visitor rows older than before and returns how
// many were removed.
func (s *Store) CleanupVisitors(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrNotConfigured
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, before.UTC().UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, "cleanup visitors")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "cleanup visitors")
	}
	return n, nil
}

// Stats aggregates visitor and submission counts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{startOfDay.UnixMilli()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{weekAgo.UnixMilli()}},
		{&stats.TotalSubmissions, `SELECT COUNT(*) FROM submissions`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, errors.Wrap(err, "count stats")
		}
	}

	var err error
	if stats.TopPaths, err = s.topPaths(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) topPaths(ctx context.Context, limit int) ([]PathStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, COUNT(*) AS views
		 FROM visitors
		 GROUP BY path
		 ORDER BY views DESC, path
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "top paths")
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]PathStat, 0)
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, errors.Wrap(err, "scan path stat")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "iterate path stats")
}

// RecentVisitors returns up to limit visitor rows, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, user_agent, path, visited_at
		 FROM visitors
		 ORDER BY visited_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "recent visitors")
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]VisitorMetric, 0)
	for rows.Next() {
		var v VisitorMetric
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, errors.Wrap(err, "scan visitor")
		}
		v.Timestamp = time.UnixMilli(at).UTC()
		out = append(out, v)
	}
	return out, errors.Wrap(rows.Err(), "iterate visitors")
}
