// Package storage handles quote persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quoteit/quote-it/internal/quote"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ErrCorrupt is returned when the quotes file exists but cannot be parsed.
var ErrCorrupt = errors.New("corrupt quotes file")

// ErrUnreadable is returned when the quotes file exists but cannot be read.
var ErrUnreadable = errors.New("unreadable quotes file")

// ReadAll reads all quotes from a JSONL file. Every line must decode to a
// valid quote with a positive id that no earlier line used.
func ReadAll(path string) ([]quote.Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file means no quotes yet
		}
		return nil, fmt.Errorf("%w: opening: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var quotes []quote.Quote
	seen := make(map[int]int) // id -> line
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var q quote.Quote
		if err := json.Unmarshal(line, &q); err != nil {
			return nil, fmt.Errorf("%w: parsing line %d: %v", ErrCorrupt, lineNum, err)
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, lineNum, err)
		}
		if q.ID <= 0 {
			return nil, fmt.Errorf("%w: line %d: invalid id %d", ErrCorrupt, lineNum, q.ID)
		}
		if prev, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: line %d: id %d already used on line %d", ErrCorrupt, lineNum, q.ID, prev)
		}
		seen[q.ID] = lineNum
		quotes = append(quotes, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	return quotes, nil
}

// WriteAll writes all quotes to a JSONL file atomically.
// Uses temp file + rename in the same directory.
func WriteAll(path string, quotes []quote.Quote) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmpFile)
	for i, q := range quotes {
		data, err := json.Marshal(q)
		if err != nil {
			tmpFile.Close()
			return fmt.Errorf("encoding quote %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			tmpFile.Close()
			return fmt.Errorf("writing quote %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmpFile.Close()
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// ComputeHash computes a SHA256 hash of a JSONL file's contents.
// A missing file hashes like an empty one.
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// NextID returns the id for a quote appended after quotes.
func NextID(quotes []quote.Quote) int {
	maxID := 0
	for _, q := range quotes {
		if q.ID > maxID {
			maxID = q.ID
		}
	}
	return maxID + 1
}
