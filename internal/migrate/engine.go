// Package migrate orchestrates a migration: it checks the working tree,
// resolves the from and to versions, selects codemods from the catalog and
// runs them one after another, halting at the first fatal error.
//
// Codemods that succeeded before a failure keep their writes; there is no
// rollback across codemods.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/clock"
	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/gitx"
	"github.com/danieljhkim/turbo-migrate/internal/log"
	"github.com/danieljhkim/turbo-migrate/internal/pkgmgr"
)

// VersionResolver supplies the versions a migration moves between.
type VersionResolver interface {
	Current(root string) (string, error)
	Latest(ctx context.Context) (string, error)
}

// Engine runs migrations. It is the API surface called by the CLI.
type Engine struct {
	catalog   *catalog.Catalog
	resolver  VersionResolver
	gitRepo   gitx.GitRepo
	installer pkgmgr.Installer
	clock     clock.Clock
	logger    *log.Logger
}

// New creates a new Engine with the given dependencies.
func New(
	cat *catalog.Catalog,
	resolver VersionResolver,
	gitRepo gitx.GitRepo,
	installer pkgmgr.Installer,
	clk clock.Clock,
	logger *log.Logger,
) *Engine {
	if logger == nil {
		logger = log.Discard()
	}
	return &Engine{
		catalog:   cat,
		resolver:  resolver,
		gitRepo:   gitRepo,
		installer: installer,
		clock:     clk,
		logger:    logger,
	}
}

// Catalog returns the codemods the engine selects from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Migrate upgrades the project at req.Root from its current turbo version to
// req.To. The returned error covers failures before any codemod ran and
// install failures; a codemod's own failure is reported through Report.Err.
func (e *Engine) Migrate(ctx context.Context, req Request) (*Report, error) {
	root, err := e.prepare(req.Root, req.Options.Dry, req.Options.Force)
	if err != nil {
		return nil, err
	}

	from, to, err := e.versions(ctx, root, req)
	if err != nil {
		return nil, err
	}

	report := e.newReport(root, req)
	report.From, report.To = from, to
	logger := e.logger.With("run_id", report.ID)

	if from == to {
		report.UpToDate = true
		report.FinishedAt = e.clock.Now()
		logger.Info("nothing to do", "version", from)
		return report, nil
	}

	codemods, err := catalog.Select(from, to, e.catalog)
	if err != nil {
		return nil, err
	}
	logger.Info("migration planned", "from", from, "to", to, "codemods", len(codemods))

	for i, codemod := range codemods {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = e.clock.Now()
			return report, err
		}
		if req.OnStep != nil {
			req.OnStep(i+1, len(codemods), codemod)
		}

		result := codemod.Run(root, req.Options)
		report.Steps = append(report.Steps, Step{Codemod: codemod, Result: result})

		if result.FatalError != nil {
			logger.With("codemod", codemod.Name).LogError("codemod failed, halting migration", result.FatalError)
			report.FinishedAt = e.clock.Now()
			return report, nil
		}
		logger.Debug("codemod finished", "codemod", codemod.Name, "files", len(result.Changes))
	}

	err = e.upgrade(ctx, root, to, req, report)
	report.FinishedAt = e.clock.Now()
	return report, err
}

// Transform runs a single codemod by name, without version resolution.
func (e *Engine) Transform(ctx context.Context, req TransformRequest) (*Report, error) {
	codemod, err := e.catalog.MustLookup(req.Codemod)
	if err != nil {
		return nil, err
	}

	root, err := e.prepare(req.Root, req.Options.Dry, req.Options.Force)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := e.newReport(root, Request{Options: req.Options})
	result := codemod.Run(root, req.Options)
	report.Steps = []Step{{Codemod: codemod, Result: result}}
	report.FinishedAt = e.clock.Now()

	if result.FatalError != nil {
		e.logger.With("run_id", report.ID, "codemod", codemod.Name).LogError("codemod failed", result.FatalError)
	}
	return report, nil
}

// prepare resolves dir to an existing absolute directory and checks git.
func (e *Engine) prepare(dir string, dry, force bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.CodeDirectoryMissing, fmt.Sprintf("failed to resolve %s", dir), err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", errors.New(errors.CodeDirectoryMissing, fmt.Sprintf("Directory (%s) does not exist", root))
	}

	if dry {
		return root, nil
	}
	clean, err := e.gitRepo.IsClean(root)
	if err != nil {
		if !force {
			return "", errors.Wrap(errors.CodeGitDirty, "failed to check git status", err).
				WithSuggestion("Use --force to bypass this check")
		}
		e.logger.WithError(err).Warn("git status check failed, continuing because of --force")
		return root, nil
	}
	if !clean {
		if !force {
			return "", errors.NewGitDirtyError(root)
		}
		e.logger.Warn("git directory is not clean, continuing because of --force", "root", root)
	}
	return root, nil
}

func (e *Engine) versions(ctx context.Context, root string, req Request) (from, to string, err error) {
	from = req.From
	if from == "" {
		if from, err = e.resolver.Current(root); err != nil {
			return "", "", err
		}
	}
	to = req.To
	if to == "" {
		if to, err = e.resolver.Latest(ctx); err != nil {
			return "", "", err
		}
	}

	fromV, err := catalog.ParseVersion(from)
	if err != nil {
		return "", "", err
	}
	toV, err := catalog.ParseVersion(to)
	if err != nil {
		return "", "", err
	}
	if toV.LT(fromV) {
		return "", "", errors.NewDowngradeError(fromV.String(), toV.String())
	}
	return fromV.String(), toV.String(), nil
}

func (e *Engine) upgrade(ctx context.Context, root, to string, req Request, report *Report) error {
	project, ok, err := pkgmgr.Detect(root)
	if err != nil {
		e.logger.WithError(err).Warn("failed to detect package manager")
		return nil
	}
	if !ok {
		e.logger.Debug("no package manager detected", "root", root)
		return nil
	}

	cmd := project.UpgradeCommand(to)
	report.UpgradeCommand = cmd.String()

	if !req.Install || req.Options.Dry {
		return nil
	}
	e.logger.Info("upgrading turbo", "command", report.UpgradeCommand)
	if err := e.installer.Install(ctx, root, cmd); err != nil {
		return errors.Wrap(errors.CodeIO, "failed to upgrade turbo", err).
			WithSuggestion(fmt.Sprintf("Run `%s` manually", report.UpgradeCommand))
	}
	report.Installed = true
	return nil
}

func (e *Engine) newReport(root string, req Request) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Root:      root,
		Options:   req.Options,
		Steps:     []Step{},
		StartedAt: e.clock.Now(),
	}
}
