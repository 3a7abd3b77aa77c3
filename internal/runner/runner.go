package runner

import (
	"fmt"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/fsops"
	"github.com/danieljhkim/turbo-migrate/internal/log"
)

// Step is the body of a codemod.
type Step func(tx *Tx) error

// RunOption customises a single Run.
type RunOption func(*Tx)

// WithFS replaces the filesystem the run reads and writes through.
func WithFS(fs fsops.FS) RunOption {
	return func(tx *Tx) {
		tx.fs = fs
	}
}

// WithLogger sets the logger used for change accounting messages.
func WithLogger(logger *log.Logger) RunOption {
	return func(tx *Tx) {
		if logger != nil {
			tx.logger = logger
		}
	}
}

// Run applies step to the project at root and returns the aggregated result.
// Errors and panics raised by step become Result.FatalError.
func Run(root string, opts Options, step Step, runOpts ...RunOption) (result Result) {
	tx := newTx(root, opts)
	for _, o := range runOpts {
		o(tx)
	}

	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.CodeTransformPanic, fmt.Sprintf("transform panicked: %v", r))
			tx.logger.LogError("transform aborted", err)
			result = Result{Changes: tx.snapshot(), FatalError: err}
		}
	}()

	if err := step(tx); err != nil {
		tx.logger.WithError(err).Debug("transform aborted", "root", root, "files_touched", len(tx.changes))
		return Result{Changes: tx.snapshot(), FatalError: err}
	}

	return Result{Changes: tx.snapshot()}
}
