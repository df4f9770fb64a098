// Package history records inserted embeds in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vidembed/internal/media"
)

// ErrNotFound is returned by Remove when no entry has the given id.
var ErrNotFound = errors.New("history entry not found")

// Entry is one inserted embed.
type Entry struct {
	ID         string
	URL        string
	Kind       media.Kind
	Src        string
	Document   string
	InsertedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	url         TEXT NOT NULL,
	kind        TEXT NOT NULL,
	src         TEXT NOT NULL,
	document    TEXT NOT NULL,
	inserted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_inserted_at ON entries (inserted_at);
`

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e. A missing ID or timestamp is filled in; the stored entry
// is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.InsertedAt.IsZero() {
		e.InsertedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, url, kind, src, document, inserted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.URL, e.Kind.String(), e.Src, e.Document, e.InsertedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("recording history: %w", err)
	}
	return e, nil
}

// List returns entries newest first. A limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, kind, src, document, inserted_at FROM entries ORDER BY inserted_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
			ts   int64
		)
		if err := rows.Scan(&e.ID, &e.URL, &kind, &e.Src, &e.Document, &ts); err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		k, err := media.ParseKind(kind)
		if err != nil {
			continue // Skip rows written by a newer version
		}
		e.Kind = k
		e.InsertedAt = time.Unix(0, ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid history id %q: %w", id, err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing history entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FormatForDisplay creates one display line per entry.
func FormatForDisplay(entries []Entry) []string {
	var items []string
	for _, e := range entries {
		items = append(items, fmt.Sprintf("%s  %s  %-11s %s  (%s)",
			e.ID, e.InsertedAt.Format("2006-01-02 15:04"), e.Kind, e.URL, filepath.Base(e.Document)))
	}
	return items
}
