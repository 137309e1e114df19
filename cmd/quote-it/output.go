package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/quoteit/quote-it/internal/quote"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// formatQuotesHuman renders quotes the way `list` prints them: each quote
// preceded by a blank line.
func formatQuotesHuman(quotes []quote.Quote) string {
	var sb strings.Builder
	for _, q := range quotes {
		sb.WriteString("\n")
		sb.WriteString(q.Format())
		sb.WriteString("\n")
	}
	return sb.String()
}
