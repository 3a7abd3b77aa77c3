// Package catalog holds the ordered registry of version-tagged codemods and
// the selector that picks the ones a migration needs.
package catalog

import (
	"github.com/blang/semver"

	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

// Transformer applies one codemod to the project at root.
// Implementations must be idempotent.
type Transformer func(root string, opts runner.Options) runner.Result

// Descriptor describes a single codemod.
type Descriptor struct {
	// Version is the release that introduced the requirement this codemod satisfies.
	Version string `json:"version"`

	// Name is the stable identifier used on the command line.
	Name string `json:"name"`

	Description string `json:"description"`

	Transformer Transformer `json:"-"`

	parsed semver.Version
}

// SemVer returns the parsed version. Only valid for descriptors returned by a Catalog.
func (d Descriptor) SemVer() semver.Version {
	return d.parsed
}

// Run invokes the transformer.
func (d Descriptor) Run(root string, opts runner.Options) runner.Result {
	return d.Transformer(root, opts)
}
