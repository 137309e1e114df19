// Package main provides the quote-it CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quoteit/quote-it/internal/config"
	"github.com/quoteit/quote-it/internal/logging"
	"github.com/quoteit/quote-it/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	jsonOutput bool
	storeDir   string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quote-it [quote]",
	Short: "A quoting utility in the terminal",
	Long: `quote-it records short quotes and lists them back.

Quotes are kept in a JSONL file under your config directory
($XDG_CONFIG_HOME/quote-it by default). Set store_dir in
~/.config/quote-it/config.yml, QUOTE_IT_DIR, or --store to move it.

Examples:
  quote-it "Woah Rust is amazing!"
  quote-it "Javascript sucks" -a "Person with common sense" -t
  quote-it list -a "Person with common sense"`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runCreate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "Directory holding quotes.jsonl (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.Version = Version
}

// setup loads .env and the global config, then installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	logging.SetDefault(logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		Prefix:  "quote-it",
	}))
	return nil
}

// mustOpenStore resolves the store directory, exits on error.
func mustOpenStore() *storage.Store {
	dir, err := config.ResolveStoreDir(storeDir)
	if err != nil {
		exitWithError(ExitConfigError, "resolving store directory: %v", err)
	}
	slog.Debug("using store", "dir", dir)
	return storage.Open(dir)
}
