package resolve

import (
	"context"
)

// Resolver supplies the from and to versions of a migration.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver that asks registry for the latest release.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Current returns the turbo version used by the project at root.
func (r *Resolver) Current(root string) (string, error) {
	return CurrentVersion(root)
}

// Latest returns the newest published turbo version.
func (r *Resolver) Latest(ctx context.Context) (string, error) {
	return r.registry.Latest(ctx, PackageName)
}
