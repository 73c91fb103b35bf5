// Package store persists visitor metrics and contact messages in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are stored; UTC text sorts chronologically.
const timeLayout = "2006-01-02 15:04:05"

// DB wraps a sql.DB with the portfolio's queries.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    hashed_ip TEXT NOT NULL,
    user_agent TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    country TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE INDEX IF NOT EXISTS idx_visitors_hashed_ip ON visitors(hashed_ip);

CREATE TABLE IF NOT EXISTS contact_messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    delivered INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contact_created ON contact_messages(created_at);
`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// Visitor is one tracked page view. The IP is only ever stored hashed.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

// PathStat counts views of one path.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarizes visitor and contact activity for the admin dashboard.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	TotalMessages    int64            `json:"total_messages"`
	TopPaths         []PathStat       `json:"top_paths"`
	RecentVisitors   []Visitor        `json:"recent_visitors"`
	RecentMessages   []ContactMessage `json:"recent_messages"`
}

// RecordVisit stores a page view.
func (d *DB) RecordVisit(ctx context.Context, v Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := d.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, formatTime(v.Timestamp), v.Country)
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// CleanupVisitors deletes visits older than cutoff and returns how many
// were removed.
func (d *DB) CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	return res.RowsAffected()
}

// RecentVisitors returns the newest visits first.
func (d *DB) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp, country
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts, &v.Country); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = parseTime(ts)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// Stats computes the dashboard summary as of now.
func (d *DB) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	dayStart := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(dayStart)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(weekAgo)}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
	}
	for _, c := range counts {
		if err := d.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("computing stats: %w", err)
		}
	}

	rows, err := d.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("querying top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scanning path stat: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.RecentVisitors, err = d.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentMessages, err = d.RecentMessages(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage stores m, assigning an ID and creation time when missing.
func (d *DB) SaveMessage(ctx context.Context, m *ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := d.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Message, m.Delivered, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving contact message: %w", err)
	}
	return nil
}

// MarkDelivered records that the message was sent by email.
func (d *DB) MarkDelivered(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking message delivered: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact message %s not found", id)
	}
	return nil
}

// RecentMessages returns the newest messages first.
func (d *DB) RecentMessages(ctx context.Context, limit int) ([]ContactMessage, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT id, name, email, message, delivered, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Delivered, &created); err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		m.CreatedAt = parseTime(created)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
