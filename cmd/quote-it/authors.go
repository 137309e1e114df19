package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/quoteit/quote-it/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authorsCmd)
}

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Show each author and how many quotes they have",
	Long: `Summarize authors across the store, in order of their first quote.

Counts come from a SQLite index under <store>/cache that is rebuilt
whenever quotes.jsonl changes. The index is disposable.`,
	Args: cobra.NoArgs,
	RunE: runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()

	authors, err := loadAuthors(s)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if jsonOutput {
		outputJSON(authors)
		return nil
	}

	if len(authors) == 0 {
		fmt.Println("No attributed quotes")
		return nil
	}

	nameWidth := len("AUTHOR")
	for _, a := range authors {
		if len(a.Author) > nameWidth {
			nameWidth = len(a.Author)
		}
	}
	fmt.Printf("%s  %s\n", padRight("AUTHOR", nameWidth), "QUOTES")
	for _, a := range authors {
		fmt.Printf("%s  %d\n", padRight(a.Author, nameWidth), a.Count)
	}

	return nil
}

// loadAuthors brings the author index up to date and queries it.
func loadAuthors(s *storage.Store) ([]storage.AuthorCount, error) {
	db, err := storage.OpenDB(s.DBPath())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rebuilt, err := db.Sync(s)
	if err != nil {
		return nil, fmt.Errorf("syncing author index: %w", err)
	}
	if rebuilt {
		n, err := db.Count()
		if err != nil {
			return nil, err
		}
		slog.Debug("rebuilt author index", "path", s.DBPath(), "quotes", n)
	}

	return db.Authors()
}

// padRight pads a string with spaces on the right.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
