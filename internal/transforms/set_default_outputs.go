package transforms

import (
	"github.com/danieljhkim/turbo-migrate/internal/jsondoc"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

// SetDefaultOutputsName is the catalog name of SetDefaultOutputs.
const SetDefaultOutputsName = "set-default-outputs"

// DefaultOutputs replaces missing or invalid task outputs.
var DefaultOutputs = []string{"dist/**", "build/**"}

// SetDefaultOutputs gives every task in turbo.json an explicit outputs list.
// Valid lists are kept; anything that is not a non-empty array of strings
// is replaced with DefaultOutputs.
func SetDefaultOutputs(root string, opts runner.Options) runner.Result {
	return runner.Run(root, opts, setDefaultOutputs)
}

func setDefaultOutputs(tx *runner.Tx) error {
	if err := checkLegacyConfig(tx); err != nil {
		return err
	}

	config, err := tx.ReadJSON(TurboConfigFile)
	if err != nil {
		return err
	}

	tasks, ok := taskMapping(config)
	if !ok {
		tx.Logger().Debug("no task mapping", "file", TurboConfigFile)
		return tx.WriteJSON(TurboConfigFile, config)
	}

	for _, name := range tasks.Keys() {
		v, _ := tasks.Get(name)
		task, ok := jsondoc.AsObject(v)
		if !ok {
			continue
		}
		if outputs, ok := task.Get("outputs"); ok && validOutputs(outputs) {
			continue
		}
		task.Set("outputs", jsondoc.Strings(DefaultOutputs...))
	}

	return tx.WriteJSON(TurboConfigFile, config)
}

func validOutputs(v any) bool {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}
