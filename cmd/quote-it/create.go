package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/quoteit/quote-it/internal/quote"
	"github.com/quoteit/quote-it/internal/storage"
	"github.com/spf13/cobra"
)

var createAuthor string
var createTimestamp bool

func init() {
	rootCmd.Flags().StringVarP(&createAuthor, "author", "a", "", "Specify an author")
	rootCmd.Flags().BoolVarP(&createTimestamp, "timestamp", "t", false, "Add a timestamp")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if createAuthor != "" || createTimestamp {
			exitWithError(ExitError, "missing quote text")
		}
		return cmd.Help()
	}

	s := mustOpenStore()

	stored, err := createQuote(s, args[0], createAuthor, createTimestamp, time.Now)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if jsonOutput {
		outputJSON(stored)
	} else {
		fmt.Printf("Saved quote #%d\n", stored.ID)
	}

	return nil
}

// createQuote builds a quote from CLI input and appends it to the store.
// now is consulted only when stamp is set.
func createQuote(s *storage.Store, text, author string, stamp bool, now func() time.Time) (quote.Quote, error) {
	var date *time.Time
	if stamp {
		t := now()
		date = &t
	}

	q, err := quote.New(text, author, date)
	if err != nil {
		return quote.Quote{}, err
	}

	stored, err := s.Append(q)
	if err != nil {
		return quote.Quote{}, err
	}
	slog.Debug("appended quote", "id", stored.ID, "path", s.Path())
	return stored, nil
}
