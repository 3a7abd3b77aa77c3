package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/clock"
	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/gitx"
	"github.com/danieljhkim/turbo-migrate/internal/log"
	"github.com/danieljhkim/turbo-migrate/internal/migrate"
	"github.com/danieljhkim/turbo-migrate/internal/pkgmgr"
	"github.com/danieljhkim/turbo-migrate/internal/resolve"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() *migrate.Engine {
	logger := log.DefaultLogger()

	registry := resolve.NewRegistry(settings.Registry,
		resolve.WithRetryMax(settings.RetryMax),
		resolve.WithLogger(logger),
	)

	installer := &pkgmgr.ExecInstaller{Stdout: stdout, Stderr: stderr}
	if jsonOutput {
		// keep stdout a single JSON document
		installer.Stdout = stderr
	}

	return migrate.New(
		catalog.Default(),
		resolve.NewResolver(registry),
		gitx.NewRealGitRepo(),
		installer,
		clock.New(),
		logger,
	)
}

// FormatError formats an error for display, including any suggestions.
func FormatError(err error) string {
	var me *errors.MigrateError
	if stderrors.As(err, &me) {
		return errorColor.Sprintf("Error: %s", me.Detail())
	}
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
