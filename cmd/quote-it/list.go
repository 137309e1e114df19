package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/quoteit/quote-it/internal/quote"
	"github.com/quoteit/quote-it/internal/storage"
	"github.com/spf13/cobra"
)

var listAuthor string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listAuthor, "author", "a", "", "Lists quotes made by specified author")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists quotes stored on the device",
	Long: `List stored quotes in the order they were added.

With --author, only quotes whose author matches exactly are shown.

Examples:
  quote-it list
  quote-it list -a "Person with common sense"`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()

	quotes, err := listQuotes(s, listAuthor)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if jsonOutput {
		outputJSON(quotes)
		return nil
	}

	if len(quotes) == 0 {
		if listAuthor != "" {
			fmt.Printf("No quotes by %q\n", listAuthor)
		} else {
			fmt.Println("No quotes stored yet")
		}
		return nil
	}
	fmt.Print(formatQuotesHuman(quotes))

	return nil
}

// listQuotes loads the store and keeps quotes whose author equals author.
// The filter is trimmed like authors are at creation. An empty author keeps
// everything. Never returns a nil slice on success.
func listQuotes(s *storage.Store, author string) ([]quote.Quote, error) {
	all, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}
	slog.Debug("loaded quotes", "count", len(all), "path", s.Path())

	matched := quote.FilterByAuthor(all, strings.TrimSpace(author))
	if matched == nil {
		matched = []quote.Quote{}
	}
	return matched, nil
}
