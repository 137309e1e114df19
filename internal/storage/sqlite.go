package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite author index. The index is derived from the JSONL
// file and can be deleted at any time.
type DB struct {
	db *sql.DB
}

// AuthorCount is one row of the author summary.
type AuthorCount struct {
	Author  string `json:"author"`
	Count   int    `json:"count"`
	FirstID int    `json:"first_id"`
}

// OpenDB opens or creates the index database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY,
			quote TEXT NOT NULL,
			author TEXT,
			date TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_quotes_author ON quotes(author) WHERE author IS NOT NULL;

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// storedHash returns the JSONL hash recorded at the last rebuild.
func (d *DB) storedHash() (string, error) {
	var hash sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = 'jsonl_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// NeedsSync reports whether the index is older than the store contents.
func (d *DB) NeedsSync(s *Store) (bool, error) {
	current, err := s.Hash()
	if err != nil {
		return true, err
	}
	stored, err := d.storedHash()
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// RebuildFromStore clears the index and reloads it from the store.
func (d *DB) RebuildFromStore(s *Store) (int, error) {
	quotes, err := s.Load()
	if err != nil {
		return 0, fmt.Errorf("reading quotes: %w", err)
	}
	hash, err := s.Hash()
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM quotes"); err != nil {
		return 0, fmt.Errorf("clearing quotes table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO quotes (id, quote, author, date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		var author, date any
		if q.HasAuthor() {
			author = q.Author
		}
		if q.HasDate() {
			date = q.Date.Format(time.RFC3339)
		}
		if _, err := stmt.Exec(q.ID, q.Text, author, date); err != nil {
			return 0, fmt.Errorf("inserting quote %d: %w", q.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('jsonl_hash', ?)`, hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_sync', ?)`,
		time.Now().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(quotes), nil
}

// Sync rebuilds the index only when the store has changed since the last
// rebuild. Returns true if a rebuild happened.
func (d *DB) Sync(s *Store) (bool, error) {
	stale, err := d.NeedsSync(s)
	if err != nil {
		return false, err
	}
	if !stale {
		return false, nil
	}
	if _, err := d.RebuildFromStore(s); err != nil {
		return false, err
	}
	return true, nil
}

// Authors returns every distinct author with its quote count, in order of
// first appearance in the store.
func (d *DB) Authors() ([]AuthorCount, error) {
	rows, err := d.db.Query(`
		SELECT author, COUNT(*), MIN(id)
		FROM quotes
		WHERE author IS NOT NULL AND author != ''
		GROUP BY author
		ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	authors := []AuthorCount{}
	for rows.Next() {
		var a AuthorCount
		if err := rows.Scan(&a.Author, &a.Count, &a.FirstID); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Count returns the number of indexed quotes.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM quotes").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}
	return n, nil
}
