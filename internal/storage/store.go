package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quoteit/quote-it/internal/quote"
)

const (
	QuotesFile = "quotes.jsonl"
	CacheDir   = "cache"
	DBFile     = "quotes.db"
)

// Store is the flat-file quote store rooted at a directory.
// It has no locking: concurrent appends from two processes race and the
// last writer wins.
type Store struct {
	Dir  string
	path string
}

// Open returns the store rooted at dir. Nothing is created until the
// first append.
func Open(dir string) *Store {
	return &Store{
		Dir:  dir,
		path: filepath.Join(dir, QuotesFile),
	}
}

// Path returns the path to the JSONL file.
func (s *Store) Path() string {
	return s.path
}

// DBPath returns the path to the author index database.
func (s *Store) DBPath() string {
	return filepath.Join(s.Dir, CacheDir, DBFile)
}

// Load returns every stored quote in append order.
func (s *Store) Load() ([]quote.Quote, error) {
	quotes, err := ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	return quotes, nil
}

// Append assigns the next id to q, rewrites the store with q at the end
// and returns the stored quote.
func (s *Store) Append(q quote.Quote) (quote.Quote, error) {
	if err := q.Validate(); err != nil {
		return quote.Quote{}, err
	}

	existing, err := s.Load()
	if err != nil {
		return quote.Quote{}, err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return quote.Quote{}, fmt.Errorf("creating store directory: %w", err)
	}

	q.ID = NextID(existing)
	if err := WriteAll(s.path, append(existing, q)); err != nil {
		return quote.Quote{}, fmt.Errorf("writing quotes: %w", err)
	}

	return q, nil
}

// Hash returns the SHA256 of the current store contents.
func (s *Store) Hash() (string, error) {
	return ComputeHash(s.path)
}
