package main

import (
	"errors"

	"github.com/quoteit/quote-it/internal/storage"
)

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, write failure)
	ExitConfigError = 2 // Configuration error (unreadable config, no home directory)
	ExitDataError   = 3 // Data error (store file unreadable or corrupt)
)

// exitCodeFor maps a store error to an exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, storage.ErrCorrupt) || errors.Is(err, storage.ErrUnreadable) {
		return ExitDataError
	}
	return ExitError
}
