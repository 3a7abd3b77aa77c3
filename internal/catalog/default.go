package catalog

import (
	"github.com/danieljhkim/turbo-migrate/internal/transforms"
)

var defaultCatalog = mustNew(
	Descriptor{
		Version:     "1.1.0",
		Name:        transforms.CreateTurboConfigName,
		Description: "Create the turbo.json file from the \"turbo\" key in package.json",
		Transformer: transforms.CreateTurboConfig,
	},
	Descriptor{
		Version:     "1.7.0",
		Name:        transforms.SetDefaultOutputsName,
		Description: "Add the default outputs to every task that does not declare valid ones",
		Transformer: transforms.SetDefaultOutputs,
	},
	Descriptor{
		Version:     "2.0.0",
		Name:        transforms.RenamePipelineName,
		Description: "Rename the \"pipeline\" key in turbo.json to \"tasks\"",
		Transformer: transforms.RenamePipeline,
	},
)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
