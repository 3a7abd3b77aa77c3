// Package pkgmgr detects the package manager of a project and builds the
// command that upgrades turbo with it.
package pkgmgr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Manager is a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
	Bun  Manager = "bun"
)

// lockfiles maps lockfile names to their manager, in detection order.
var lockfiles = []struct {
	name    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"package-lock.json", NPM},
}

// Project describes how dependencies of a project are managed.
type Project struct {
	Manager Manager

	// Workspace is set for monorepo roots, which some managers need a flag for.
	Workspace bool
}

type manifest struct {
	PackageManager string          `json:"packageManager"`
	Workspaces     json.RawMessage `json:"workspaces"`
}

// Detect inspects root. The packageManager field of package.json wins over
// lockfiles. ok is false when nothing identifies a manager.
func Detect(root string) (project Project, ok bool, err error) {
	var m manifest
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &m); err != nil {
			return Project{}, false, fmt.Errorf("failed to parse package.json: %w", err)
		}
	case !os.IsNotExist(err):
		return Project{}, false, fmt.Errorf("failed to read package.json: %w", err)
	}

	project.Workspace = len(m.Workspaces) > 0 && string(m.Workspaces) != "null" || fileExists(filepath.Join(root, "pnpm-workspace.yaml"))

	if name, _, _ := strings.Cut(m.PackageManager, "@"); name != "" {
		switch mgr := Manager(name); mgr {
		case NPM, Yarn, PNPM, Bun:
			project.Manager = mgr
			return project, true, nil
		}
	}

	for _, lf := range lockfiles {
		if fileExists(filepath.Join(root, lf.name)) {
			project.Manager = lf.manager
			return project, true, nil
		}
	}
	return project, false, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Command is an argv ready to run in the project root.
type Command []string

// String renders the command as it would be typed.
func (c Command) String() string {
	return strings.Join(c, " ")
}

// UpgradeCommand returns the command that installs turbo@version as a dev dependency.
func (p Project) UpgradeCommand(version string) Command {
	pkg := "turbo@" + version
	switch p.Manager {
	case Yarn:
		cmd := Command{"yarn", "add", pkg, "--dev"}
		if p.Workspace {
			cmd = append(cmd, "-W")
		}
		return cmd
	case PNPM:
		cmd := Command{"pnpm", "add", pkg, "--save-dev"}
		if p.Workspace {
			cmd = append(cmd, "-w")
		}
		return cmd
	case Bun:
		return Command{"bun", "add", pkg, "--dev"}
	default:
		return Command{"npm", "install", pkg, "--save-dev"}
	}
}

// Installer runs upgrade commands.
type Installer interface {
	Install(ctx context.Context, root string, cmd Command) error
}

// ExecInstaller runs commands with os/exec, streaming their output.
type ExecInstaller struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs cmd with root as the working directory.
func (e *ExecInstaller) Install(ctx context.Context, root string, cmd Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("empty command")
	}
	c := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	c.Dir = root
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}
