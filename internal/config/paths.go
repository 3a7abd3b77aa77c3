// Package config manages turbo-migrate configuration and filesystem paths.
//
// The default root is ~/.turbo-migrate/ and holds config.yaml. The root can
// be moved with the TURBO_MIGRATE_HOME environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the configuration root.
const HomeEnv = "TURBO_MIGRATE_HOME"

// Paths contains the filesystem paths used by turbo-migrate.
type Paths struct {
	// Root is the base directory (default: ~/.turbo-migrate)
	Root string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths, honouring TURBO_MIGRATE_HOME.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(HomeEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".turbo-migrate")
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
	}, nil
}
