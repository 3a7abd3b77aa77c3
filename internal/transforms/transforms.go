// Package transforms contains the built-in codemods. Each one is a plain
// function with the catalog's Transformer signature that delegates file
// access and change accounting to the runner.
package transforms

import (
	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/jsondoc"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

const (
	// TurboConfigFile is the primary configuration document.
	TurboConfigFile = "turbo.json"

	// PackageManifest is the manifest that may still carry the legacy config key.
	PackageManifest = "package.json"

	// LegacyConfigKey is the deprecated configuration key inside package.json.
	LegacyConfigKey = "turbo"

	// SchemaURL is written to newly created configuration documents.
	SchemaURL = "https://turbo.build/schema.json"

	schemaKey      = "$schema"
	tasksKey       = "tasks"
	pipelineKey    = "pipeline"
	codemodCommand = "npx @turbo/codemod"
)

// Remediation returns the command that runs the named codemod on its own.
func Remediation(name string) string {
	return codemodCommand + " " + name
}

// checkLegacyConfig fails when package.json still carries the legacy key.
// Without turbo.json the guard is structural; once turbo.json exists the
// leftover key is advisory and Force skips it.
func checkLegacyConfig(tx *runner.Tx) error {
	hasManifest, err := tx.Exists(PackageManifest)
	if err != nil || !hasManifest {
		return err
	}

	manifest, err := tx.ReadJSON(PackageManifest)
	if err != nil {
		return err
	}
	if !manifest.Has(LegacyConfigKey) {
		return nil
	}

	hasConfig, err := tx.Exists(TurboConfigFile)
	if err != nil {
		return err
	}
	if hasConfig && tx.Options().Force {
		tx.Logger().Warn("ignoring legacy config key", "key", LegacyConfigKey, "manifest", PackageManifest)
		return nil
	}

	return errors.NewPrerequisiteError(LegacyConfigKey, PackageManifest, Remediation(CreateTurboConfigName))
}

// taskMapping returns the task definitions of a turbo.json document,
// preferring "tasks" over the older "pipeline" key.
func taskMapping(config *jsondoc.Object) (*jsondoc.Object, bool) {
	for _, key := range []string{tasksKey, pipelineKey} {
		v, ok := config.Get(key)
		if !ok {
			continue
		}
		return jsondoc.AsObject(v)
	}
	return nil, false
}
