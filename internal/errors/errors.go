// Package errors defines the coded error taxonomy shared by the migration
// engine, the transform runner and the CLI.
//
// Every fatal condition a codemod or the orchestrator can hit is a
// *MigrateError carrying a stable Code. Messages follow fixed patterns so
// that callers (and tests) can match on substrings.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

const (
	// Configuration errors
	CodeConfigNotFound    ErrorCode = "CONFIG-001"
	CodeMalformedDocument ErrorCode = "CONFIG-002"
	CodeConfigConflict    ErrorCode = "CONFIG-003"

	// Migration errors
	CodePrerequisiteNotMigrated ErrorCode = "MIGRATE-001"
	CodeCodemodNotFound         ErrorCode = "MIGRATE-002"
	CodeCatalogInvalid          ErrorCode = "MIGRATE-003"
	CodeTransformPanic          ErrorCode = "MIGRATE-004"

	// Version errors
	CodeVersionParse      ErrorCode = "VERSION-001"
	CodeDowngrade         ErrorCode = "VERSION-002"
	CodeVersionLookup     ErrorCode = "VERSION-003"
	CodeVersionUndetected ErrorCode = "VERSION-004"

	// Environment errors
	CodeGitDirty         ErrorCode = "GIT-001"
	CodeDirectoryMissing ErrorCode = "IO-001"
	CodeIO               ErrorCode = "IO-002"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrConfigNotFound          = &MigrateError{Code: CodeConfigNotFound}
	ErrMalformedDocument       = &MigrateError{Code: CodeMalformedDocument}
	ErrConfigConflict          = &MigrateError{Code: CodeConfigConflict}
	ErrPrerequisiteNotMigrated = &MigrateError{Code: CodePrerequisiteNotMigrated}
	ErrCodemodNotFound         = &MigrateError{Code: CodeCodemodNotFound}
	ErrCatalogInvalid          = &MigrateError{Code: CodeCatalogInvalid}
	ErrVersionParse            = &MigrateError{Code: CodeVersionParse}
	ErrDowngrade               = &MigrateError{Code: CodeDowngrade}
	ErrVersionLookup           = &MigrateError{Code: CodeVersionLookup}
	ErrVersionUndetected       = &MigrateError{Code: CodeVersionUndetected}
	ErrGitDirty                = &MigrateError{Code: CodeGitDirty}
	ErrDirectoryMissing        = &MigrateError{Code: CodeDirectoryMissing}
)

// MigrateError is an error with a code, optional suggestions and a cause.
type MigrateError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *MigrateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Detail renders the error together with its suggestions, for terminals.
func (e *MigrateError) Detail() string {
	if len(e.Suggestions) == 0 {
		return e.Error()
	}
	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteString("\n\nSuggestions:")
	for _, s := range e.Suggestions {
		fmt.Fprintf(&b, "\n  • %s", s)
	}
	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *MigrateError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *MigrateError with the same code.
func (e *MigrateError) Is(target error) bool {
	t, ok := target.(*MigrateError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new MigrateError
func New(code ErrorCode, message string) *MigrateError {
	return &MigrateError{Code: code, Message: message}
}

// Wrap creates a new MigrateError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *MigrateError {
	return &MigrateError{Code: code, Message: message, Cause: cause}
}

// WithSuggestion adds a suggestion to the error
func (e *MigrateError) WithSuggestion(suggestion string) *MigrateError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// CodeOf returns the code of the first *MigrateError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var me *MigrateError
	if errors.As(err, &me) {
		return me.Code, true
	}
	return "", false
}

// NewConfigNotFoundError reports a missing configuration file under root.
func NewConfigNotFoundError(file, root string) *MigrateError {
	return New(CodeConfigNotFound, fmt.Sprintf("No %s found at %s. Is the path correct?", file, root)).
		WithSuggestion("Pass the repository root as the directory argument")
}

// NewMalformedDocumentError reports a configuration file that is not valid JSON.
func NewMalformedDocumentError(file string, cause error) *MigrateError {
	return Wrap(CodeMalformedDocument, fmt.Sprintf("%s is not a valid JSON document", file), cause).
		WithSuggestion(fmt.Sprintf("Fix the syntax of %s and re-run the migration", file))
}

// NewPrerequisiteError reports a legacy key that a prior codemod must move first.
func NewPrerequisiteError(key, manifest, remediation string) *MigrateError {
	return New(CodePrerequisiteNotMigrated,
		fmt.Sprintf("%q key detected in %s. Run `%s` first", key, manifest, remediation))
}

// NewVersionParseError reports a string that is not a semantic version.
func NewVersionParseError(version string, cause error) *MigrateError {
	return Wrap(CodeVersionParse, fmt.Sprintf("invalid version %q", version), cause)
}

// NewDowngradeError reports a request to migrate to an older version.
func NewDowngradeError(from, to string) *MigrateError {
	return New(CodeDowngrade, fmt.Sprintf("cannot migrate backwards from %s to %s", from, to)).
		WithSuggestion("Pass a --to version newer than the installed version")
}

// NewGitDirtyError reports uncommitted changes in the project.
func NewGitDirtyError(root string) *MigrateError {
	return New(CodeGitDirty, fmt.Sprintf("git directory %s is not clean", root)).
		WithSuggestion("Stash or commit your changes first").
		WithSuggestion("Use --force to bypass this check, or --dry to preview")
}
