// Package exitcode maps errors to process exit codes.
package exitcode

import (
	"strings"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// MigrationFailed indicates a codemod aborted
	MigrationFailed = 3

	// DirtyWorkingTree indicates uncommitted changes blocked the run
	DirtyWorkingTree = 4

	// VersionError indicates a version could not be parsed, detected or accepted
	VersionError = 5

	// NetworkError indicates the registry could not be reached
	NetworkError = 6
)

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if code, ok := errors.CodeOf(err); ok {
		switch code {
		case errors.CodeGitDirty:
			return DirtyWorkingTree
		case errors.CodeVersionLookup:
			return NetworkError
		case errors.CodeVersionParse, errors.CodeDowngrade, errors.CodeVersionUndetected:
			return VersionError
		case errors.CodeCodemodNotFound, errors.CodeDirectoryMissing:
			return UsageError
		case errors.CodeConfigNotFound, errors.CodeMalformedDocument, errors.CodeConfigConflict,
			errors.CodePrerequisiteNotMigrated, errors.CodeTransformPanic:
			return MigrationFailed
		}
		return GeneralError
	}

	// cobra reports usage problems as plain errors
	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "accepts", "requires at least"} {
		if strings.Contains(errMsg, marker) {
			return UsageError
		}
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case MigrationFailed:
		return "Migration failed"
	case DirtyWorkingTree:
		return "Working tree has uncommitted changes"
	case VersionError:
		return "Version error"
	case NetworkError:
		return "Network error"
	default:
		return "Unknown error"
	}
}
