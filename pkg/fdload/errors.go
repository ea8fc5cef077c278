package fdload

import (
	"errors"
	"strings"
)

// Sentinel errors for the failures that decide the process exit code.
// Per-file load errors are never wrapped in these.
var (
	// ErrInvalidConfig indicates the environment, flags or mapping file are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStorageConnection indicates the object store handle could not be acquired.
	ErrStorageConnection = errors.New("storage connection failed")

	// ErrDatabaseConnection indicates the database handle could not be acquired.
	ErrDatabaseConnection = errors.New("database connection failed")
)

// ExitCodeForError returns the exit code for an error returned by the CLI.
// nil maps to ExitSuccess, unclassified errors to ExitGeneralError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrStorageConnection):
		return ExitStorageConnection
	case errors.Is(err, ErrDatabaseConnection):
		return ExitDatabaseConnection
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "invalid argument", "accepts ", "required flag"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
