package migrate

import (
	"encoding/json"
	"time"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

// Request describes one migration.
type Request struct {
	// Root is the project directory. Relative paths resolve against the cwd.
	Root string

	// From overrides the detected current version.
	From string

	// To pins the target version. Empty means the latest published release.
	To string

	Options runner.Options

	// Install runs the upgrade command after a successful migration.
	Install bool

	// OnStep is called before each codemod runs, with a 1-based index.
	OnStep func(index, total int, codemod catalog.Descriptor)
}

// TransformRequest describes a single named codemod run.
type TransformRequest struct {
	Root    string
	Codemod string
	Options runner.Options
}

// Step is one executed codemod.
type Step struct {
	Codemod catalog.Descriptor
	Result  runner.Result
}

// MarshalJSON flattens the descriptor fields next to the result.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string        `json:"name"`
		Version string        `json:"version"`
		Result  runner.Result `json:"result"`
	}{
		Name:    s.Codemod.Name,
		Version: s.Codemod.Version,
		Result:  s.Result,
	})
}

// Report is the outcome of a migration or a single transform.
type Report struct {
	ID      string         `json:"id"`
	Root    string         `json:"root"`
	From    string         `json:"from,omitempty"`
	To      string         `json:"to,omitempty"`
	Options runner.Options `json:"options"`

	// UpToDate is set when from and to are the same version.
	UpToDate bool `json:"upToDate,omitempty"`

	Steps []Step `json:"steps"`

	// UpgradeCommand is empty when no package manager could be identified.
	UpgradeCommand string `json:"upgradeCommand,omitempty"`
	Installed      bool   `json:"installed,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Err returns the fatal error of the step that halted the run, if any.
func (r *Report) Err() error {
	for _, s := range r.Steps {
		if s.Result.FatalError != nil {
			return s.Result.FatalError
		}
	}
	return nil
}

// Failed reports whether a codemod aborted.
func (r *Report) Failed() bool {
	return r.Err() != nil
}

// Changes returns all file changes in execution order.
func (r *Report) Changes() []runner.FileChange {
	var out []runner.FileChange
	for _, s := range r.Steps {
		out = append(out, s.Result.Changes...)
	}
	return out
}
