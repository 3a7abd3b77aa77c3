// Package runner executes a single codemod against a project root and
// reports, per file, what the codemod changed.
//
// A codemod is a Step that only touches files through the Tx it is given.
// Run owns everything around it: change accounting, dry-run suppression,
// print-mode previews and converting failures into a Result. Nothing a
// step returns or panics with escapes Run.
package runner

import (
	"encoding/json"
)

// Options controls how a codemod run treats the project.
type Options struct {
	// Force bypasses advisory guards. Structural guards ignore it.
	Force bool `json:"force"`

	// Dry computes changes without writing anything.
	Dry bool `json:"dry"`

	// Print attaches a unified diff preview to every changed file.
	Print bool `json:"print"`
}

// Action describes what happened to a single file.
type Action string

const (
	ActionCreated   Action = "created"
	ActionModified  Action = "modified"
	ActionUnchanged Action = "unchanged"
	// ActionSkipped means the file would have changed but Dry suppressed the write.
	ActionSkipped Action = "skipped"
)

// FileChange is the change record for one project-relative file.
type FileChange struct {
	Path      string `json:"path"`
	Action    Action `json:"action"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`

	// Diff is the print-mode preview; empty unless Options.Print was set.
	Diff string `json:"diff,omitempty"`
}

// Result is the outcome of running one codemod.
type Result struct {
	// Changes lists touched files in the order they were first touched.
	Changes []FileChange

	// FatalError is set when the codemod aborted. Files recorded in
	// Changes before the failure keep whatever was written for them.
	FatalError error
}

// Change returns the record for path.
func (r Result) Change(path string) (FileChange, bool) {
	for _, c := range r.Changes {
		if c.Path == path {
			return c, true
		}
	}
	return FileChange{}, false
}

// Failed reports whether the run aborted.
func (r Result) Failed() bool {
	return r.FatalError != nil
}

// Totals sums additions and deletions across all files.
func (r Result) Totals() (additions, deletions int) {
	for _, c := range r.Changes {
		additions += c.Additions
		deletions += c.Deletions
	}
	return additions, deletions
}

// MarshalJSON renders the fatal error as its message.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Changes    []FileChange `json:"changes"`
		FatalError string       `json:"fatalError,omitempty"`
	}{
		Changes: r.Changes,
	}
	if out.Changes == nil {
		out.Changes = []FileChange{}
	}
	if r.FatalError != nil {
		out.FatalError = r.FatalError.Error()
	}
	return json.Marshal(out)
}
