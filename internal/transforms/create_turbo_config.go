package transforms

import (
	"fmt"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/jsondoc"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

// CreateTurboConfigName is the catalog name of CreateTurboConfig.
const CreateTurboConfigName = "create-turbo-config"

// CreateTurboConfig moves the "turbo" key of package.json into turbo.json.
func CreateTurboConfig(root string, opts runner.Options) runner.Result {
	return runner.Run(root, opts, createTurboConfig)
}

func createTurboConfig(tx *runner.Tx) error {
	manifest, err := tx.ReadJSON(PackageManifest)
	if err != nil {
		return err
	}

	legacy, ok := manifest.Get(LegacyConfigKey)
	if !ok {
		return tx.WriteJSON(PackageManifest, manifest)
	}

	hasConfig, err := tx.Exists(TurboConfigFile)
	if err != nil {
		return err
	}

	if hasConfig {
		if !tx.Options().Force {
			return errors.New(errors.CodeConfigConflict,
				fmt.Sprintf("%s already exists and %s still has a %q key", TurboConfigFile, PackageManifest, LegacyConfigKey)).
				WithSuggestion(fmt.Sprintf("Merge the %q key into %s by hand", LegacyConfigKey, TurboConfigFile)).
				WithSuggestion(fmt.Sprintf("Use --force to keep %s and drop the key", TurboConfigFile))
		}
		tx.Logger().Warn("keeping existing config", "file", TurboConfigFile)
	} else {
		legacyConfig, ok := jsondoc.AsObject(legacy)
		if !ok {
			return errors.New(errors.CodeMalformedDocument,
				fmt.Sprintf("%q key in %s is not an object", LegacyConfigKey, PackageManifest))
		}
		if err := tx.WriteJSON(TurboConfigFile, withSchema(legacyConfig)); err != nil {
			return err
		}
	}

	manifest.Delete(LegacyConfigKey)
	return tx.WriteJSON(PackageManifest, manifest)
}

// withSchema returns config with a leading $schema key when it has none.
func withSchema(config *jsondoc.Object) *jsondoc.Object {
	if config.Has(schemaKey) {
		return config
	}
	out := jsondoc.NewObject()
	out.Set(schemaKey, SchemaURL)
	for _, k := range config.Keys() {
		v, _ := config.Get(k)
		out.Set(k, v)
	}
	return out
}
