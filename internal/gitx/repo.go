// Package gitx answers the few questions the migration asks about git.
package gitx

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// IsClean reports whether the working tree containing dir has no
	// uncommitted changes. Directories outside a repository are clean.
	IsClean(dir string) (bool, error)
}

// ErrNotRepository is returned by Discover outside a git repository.
var ErrNotRepository = fmt.Errorf("not in a git repository")

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from cwd looking for .git.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotRepository
		}
		current = parent
	}
}

// IsClean runs `git status --porcelain` in the repository containing dir.
func (g *RealGitRepo) IsClean(dir string) (bool, error) {
	root, err := g.Discover(dir)
	if err == ErrNotRepository {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status failed in %s: %w", root, err)
	}

	return strings.TrimSpace(string(output)) == "", nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root  string
	clean bool
	err   error
}

// NewFakeGitRepo creates a FakeGitRepo rooted at root.
func NewFakeGitRepo(root string, clean bool) *FakeGitRepo {
	return &FakeGitRepo{root: root, clean: clean}
}

// SetError sets an error to be returned by all methods.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// SetClean changes the reported working tree state.
func (g *FakeGitRepo) SetClean(clean bool) {
	g.clean = clean
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// IsClean returns the predetermined state.
func (g *FakeGitRepo) IsClean(dir string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.clean, nil
}
