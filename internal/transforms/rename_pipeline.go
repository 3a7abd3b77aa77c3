package transforms

import (
	"fmt"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

// RenamePipelineName is the catalog name of RenamePipeline.
const RenamePipelineName = "rename-pipeline"

// RenamePipeline renames the top-level "pipeline" key of turbo.json to "tasks".
func RenamePipeline(root string, opts runner.Options) runner.Result {
	return runner.Run(root, opts, renamePipeline)
}

func renamePipeline(tx *runner.Tx) error {
	if err := checkLegacyConfig(tx); err != nil {
		return err
	}

	config, err := tx.ReadJSON(TurboConfigFile)
	if err != nil {
		return err
	}

	switch {
	case config.Has(pipelineKey) && config.Has(tasksKey):
		return errors.New(errors.CodeConfigConflict,
			fmt.Sprintf("%s has both %q and %q keys", TurboConfigFile, pipelineKey, tasksKey)).
			WithSuggestion(fmt.Sprintf("Merge %q into %q and remove it", pipelineKey, tasksKey))
	case config.Has(pipelineKey):
		config.Rename(pipelineKey, tasksKey)
	}

	return tx.WriteJSON(TurboConfigFile, config)
}
