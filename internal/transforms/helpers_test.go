package transforms

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/turbo-migrate/internal/jsondoc"
	"github.com/danieljhkim/turbo-migrate/internal/log"
)

// captureLogs routes the default logger into a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.DefaultLogger()
	log.SetDefaultLogger(log.New(log.Config{Level: log.LevelDebug, Format: log.FormatText, Output: &buf}))
	t.Cleanup(func() { log.SetDefaultLogger(previous) })
	return &buf
}

// loadFixture copies testdata/<name> into a fresh temp directory and returns it.
func loadFixture(t *testing.T, name string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, copyFS(root, os.DirFS(filepath.Join("testdata", name))))
	return root
}

// copyFS copies fsys into dir; stand-in for os.CopyFS (Go 1.23+) on older toolchains.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o777)
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o666)
	})
}

func read(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, root, rel string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(root, rel))
	if os.IsNotExist(err) {
		return false
	}
	require.NoError(t, err)
	return true
}

func keysOf(t *testing.T, root, rel string) []string {
	t.Helper()
	doc, err := jsondoc.Parse([]byte(read(t, root, rel)))
	require.NoError(t, err)
	return doc.Keys()
}
