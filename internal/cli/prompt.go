package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

const rootPrompt = "Where is the root of the repo where the transform should run?"

// isInteractive reports whether stdin is attached to a terminal.
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveDir returns the directory argument, asking for one when none was
// given and a terminal is attached.
func resolveDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if jsonOutput || !isInteractive() {
		return ".", nil
	}
	return promptForDir()
}

func promptForDir() (string, error) {
	value := "."

	input := huh.NewInput().
		Title(rootPrompt).
		Placeholder(".").
		Value(&value).
		Validate(validateDir)

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return normalizeDir(value), nil
}

// normalizeDir trims the answer; an empty answer means the current directory.
func normalizeDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "."
	}
	return dir
}

func validateDir(dir string) error {
	dir = normalizeDir(dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %s does not exist", dir)
	}
	return nil
}
