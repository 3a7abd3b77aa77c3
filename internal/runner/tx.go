package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/fsops"
	"github.com/danieljhkim/turbo-migrate/internal/jsondoc"
	"github.com/danieljhkim/turbo-migrate/internal/log"
)

const defaultFileMode os.FileMode = 0644

// original is a file as it was before the run touched it.
type original struct {
	exists bool
	raw    []byte
	doc    *jsondoc.Object
	mode   os.FileMode
}

// Tx is a codemod's view of the project for the duration of one Run.
// Reads see earlier writes of the same run, including suppressed dry-run writes.
type Tx struct {
	root   string
	opts   Options
	fs     fsops.FS
	logger *log.Logger

	originals map[string]*original
	current   map[string]*jsondoc.Object
	changes   []FileChange
	index     map[string]int

	// written holds the last content this run put on disk for a path.
	written map[string]*jsondoc.Object
}

func newTx(root string, opts Options) *Tx {
	return &Tx{
		root:      root,
		opts:      opts,
		fs:        fsops.NewRealFS(),
		logger:    log.DefaultLogger(),
		originals: make(map[string]*original),
		current:   make(map[string]*jsondoc.Object),
		written:   make(map[string]*jsondoc.Object),
		index:     make(map[string]int),
	}
}

// Root returns the project root.
func (tx *Tx) Root() string {
	return tx.root
}

// Options returns the run options.
func (tx *Tx) Options() Options {
	return tx.opts
}

// Logger returns the run logger.
func (tx *Tx) Logger() *log.Logger {
	return tx.logger
}

// Exists reports whether rel exists, taking earlier writes of this run into account.
func (tx *Tx) Exists(rel string) (bool, error) {
	if _, ok := tx.current[rel]; ok {
		return true, nil
	}
	if err := tx.fs.ValidateRelPath(rel); err != nil {
		return false, err
	}
	exists, err := tx.fs.Exists(tx.abs(rel))
	if err != nil {
		return false, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to check %s", rel), err)
	}
	return exists, nil
}

// ReadJSON returns a private copy of the JSON object stored in rel.
func (tx *Tx) ReadJSON(rel string) (*jsondoc.Object, error) {
	if doc, ok := tx.current[rel]; ok {
		return doc.Clone(), nil
	}

	orig, err := tx.load(rel)
	if err != nil {
		return nil, err
	}
	if !orig.exists {
		return nil, errors.NewConfigNotFoundError(rel, tx.root)
	}

	tx.current[rel] = orig.doc
	return orig.doc.Clone(), nil
}

// WriteJSON records doc as the new content of rel and, unless the run is
// dry, brings the file on disk in line with it immediately. Counts are
// always taken against the file as it was before the run.
func (tx *Tx) WriteJSON(rel string, doc *jsondoc.Object) error {
	orig, err := tx.load(rel)
	if err != nil {
		return err
	}

	before := orig.doc
	if !orig.exists {
		before = jsondoc.NewObject()
	}
	additions, deletions := jsondoc.Diff(before, doc)

	action := ActionModified
	switch {
	case !orig.exists:
		action = ActionCreated
	case jsondoc.Equal(orig.doc, doc):
		action = ActionUnchanged
	}

	data, err := jsondoc.Encode(doc)
	if err != nil {
		return errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to encode %s", rel), err)
	}

	change := FileChange{
		Path:      rel,
		Action:    action,
		Additions: additions,
		Deletions: deletions,
	}

	if tx.opts.Print && action != ActionUnchanged {
		preview, err := tx.preview(rel, orig, data)
		if err != nil {
			return err
		}
		change.Diff = preview
	}

	switch {
	case tx.opts.Dry:
		if action != ActionUnchanged {
			change.Action = ActionSkipped
		}
	case action == ActionUnchanged:
		// an earlier write of this run may still be on disk
		if _, ok := tx.written[rel]; ok {
			if err := tx.fs.AtomicWrite(tx.abs(rel), orig.raw, orig.mode); err != nil {
				return errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to restore %s", rel), err)
			}
			delete(tx.written, rel)
		}
	default:
		if prev, ok := tx.written[rel]; !ok || !jsondoc.Equal(prev, doc) {
			if err := tx.fs.AtomicWrite(tx.abs(rel), data, orig.mode); err != nil {
				return errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to write %s", rel), err)
			}
			tx.written[rel] = doc.Clone()
		}
	}

	tx.current[rel] = doc.Clone()
	tx.record(change)

	tx.logger.Debug("file change recorded",
		"path", rel,
		"action", string(change.Action),
		"additions", additions,
		"deletions", deletions,
		"dry", tx.opts.Dry,
	)
	return nil
}

// load reads and parses rel once per run. Later calls return the cached original.
func (tx *Tx) load(rel string) (*original, error) {
	if orig, ok := tx.originals[rel]; ok {
		return orig, nil
	}
	if err := tx.fs.ValidateRelPath(rel); err != nil {
		return nil, err
	}

	path := tx.abs(rel)
	orig := &original{mode: defaultFileMode}

	exists, err := tx.fs.Exists(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to check %s", rel), err)
	}
	if exists {
		info, err := tx.fs.Lstat(path)
		if err != nil {
			return nil, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to stat %s", rel), err)
		}
		orig.mode = info.Mode().Perm()

		data, err := tx.fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to read %s", rel), err)
		}
		doc, err := jsondoc.Parse(data)
		if err != nil {
			return nil, errors.NewMalformedDocumentError(rel, err)
		}
		orig.exists = true
		orig.raw = data
		orig.doc = doc
	}

	tx.originals[rel] = orig
	return orig, nil
}

func (tx *Tx) preview(rel string, orig *original, data []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		B:        difflib.SplitLines(string(data)),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	}
	if orig.exists {
		before, err := jsondoc.Encode(orig.doc)
		if err != nil {
			return "", errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to encode %s", rel), err)
		}
		diff.A = difflib.SplitLines(string(before))
	} else {
		diff.FromFile = "/dev/null"
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to diff %s", rel), err)
	}
	return text, nil
}

func (tx *Tx) record(change FileChange) {
	if i, ok := tx.index[change.Path]; ok {
		tx.changes[i] = change
		return
	}
	tx.index[change.Path] = len(tx.changes)
	tx.changes = append(tx.changes, change)
}

func (tx *Tx) snapshot() []FileChange {
	out := make([]FileChange, len(tx.changes))
	copy(out, tx.changes)
	return out
}

func (tx *Tx) abs(rel string) string {
	return filepath.Join(tx.root, rel)
}
