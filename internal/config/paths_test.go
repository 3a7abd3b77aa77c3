package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		t.Setenv("HOME", t.TempDir())

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if filepath.Base(paths.Root) != ".turbo-migrate" {
			t.Errorf("Root should end with .turbo-migrate, got: %s", paths.Root)
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
	})

	t.Run("respects TURBO_MIGRATE_HOME", func(t *testing.T) {
		customRoot := "/custom/turbo-migrate/path"
		t.Setenv(HomeEnv, customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Root should be %s, got: %s", customRoot, paths.Root)
		}
		if paths.Config != filepath.Join(customRoot, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
	})
}
