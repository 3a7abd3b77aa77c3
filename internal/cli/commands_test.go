package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/exitcode"
)

const legacyProject = `{
  "name": "monorepo",
  "private": true,
  "packageManager": "pnpm@8.6.0",
  "devDependencies": {
    "turbo": "^1.0.0"
  },
  "turbo": {
    "pipeline": {
      "build": {
        "dependsOn": ["^build"],
        "outputs": ["dist/**"]
      },
      "test": {}
    }
  }
}
`

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return root
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestMigrateCommand_EndToEnd(t *testing.T) {
	root := newProject(t, map[string]string{"package.json": legacyProject})

	output, err := runCLI(t, "migrate", root, "--from", "1.0.0", "--to", "2.0.0", "--force")
	require.NoError(t, err)

	assert.Contains(t, output, "Upgrading turbo from 1.0.0 to 2.0.0")
	assert.Contains(t, output, "(1/3) Running create-turbo-config")
	assert.Contains(t, output, "(2/3) Running set-default-outputs")
	assert.Contains(t, output, "(3/3) Running rename-pipeline")
	assert.Contains(t, output, "pnpm add turbo@2.0.0 --save-dev")
	assert.Contains(t, output, "Migration completed!")

	turbo := readJSON(t, filepath.Join(root, "turbo.json"))
	assert.Contains(t, turbo, "tasks")
	assert.NotContains(t, turbo, "pipeline")

	pkg := readJSON(t, filepath.Join(root, "package.json"))
	assert.NotContains(t, pkg, "turbo")
}

func TestMigrateCommand_DryLeavesFilesAlone(t *testing.T) {
	original := `{"pipeline":{"build":{}}}`
	root := newProject(t, map[string]string{
		"package.json": `{"name":"repo","packageManager":"npm@10.0.0"}`,
		"turbo.json":   original,
	})

	output, err := runCLI(t, "migrate", root, "--from", "1.7.0", "--to", "2.0.0", "--dry", "--print")
	require.NoError(t, err)

	assert.Contains(t, output, "rename-pipeline")
	assert.Contains(t, output, "skipped")
	assert.Contains(t, output, "+++ b/turbo.json")
	assert.Contains(t, output, "Dry run, no files were written")
	assert.NotContains(t, output, "Migration completed!")

	data, err := os.ReadFile(filepath.Join(root, "turbo.json"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestMigrateCommand_UpToDate(t *testing.T) {
	root := newProject(t, map[string]string{"turbo.json": `{"tasks":{}}`})

	output, err := runCLI(t, "migrate", root, "--from", "2.0.0", "--to", "2.0.0", "--dry")
	require.NoError(t, err)
	assert.Contains(t, output, "Nothing to do, current version (2.0.0) is the same as the requested version (2.0.0)")
}

func TestMigrateCommand_NoCodemodsInRange(t *testing.T) {
	root := newProject(t, map[string]string{"turbo.json": `{"tasks":{}}`})

	output, err := runCLI(t, "migrate", root, "--from", "2.0.0", "--to", "2.1.0", "--dry")
	require.NoError(t, err)
	assert.Contains(t, output, "No codemods required to migrate from 2.0.0 to 2.1.0")
}

func TestMigrateCommand_Downgrade(t *testing.T) {
	root := newProject(t, nil)

	_, err := runCLI(t, "migrate", root, "--from", "2.0.0", "--to", "1.0.0", "--dry")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDowngrade)
	assert.Equal(t, exitcode.VersionError, exitcode.DetermineExitCode(err))
}

func TestMigrateCommand_MissingDirectory(t *testing.T) {
	_, err := runCLI(t, "migrate", filepath.Join(t.TempDir(), "missing"), "--from", "1.0.0", "--to", "2.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDirectoryMissing)
}

func TestMigrateCommand_CodemodFailureHalts(t *testing.T) {
	root := newProject(t, map[string]string{"package.json": `{"name":"repo"}`})

	output, err := runCLI(t, "migrate", root, "--from", "1.6.0", "--to", "2.0.0", "--force")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
	assert.Equal(t, exitcode.MigrationFailed, exitcode.DetermineExitCode(err))
	assert.Contains(t, output, "set-default-outputs failed, halting")
	assert.NotContains(t, output, "Running rename-pipeline")
}

func TestMigrateCommand_JSON(t *testing.T) {
	root := newProject(t, map[string]string{"turbo.json": `{"pipeline":{"build":{}}}`})

	output, err := runCLI(t, "--json", "migrate", root, "--from", "1.7.0", "--to", "2.0.0", "--force")
	require.NoError(t, err)

	var report struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Steps []struct {
			Name   string `json:"name"`
			Result struct {
				Changes []struct {
					Path   string `json:"path"`
					Action string `json:"action"`
				} `json:"changes"`
			} `json:"result"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, "1.7.0", report.From)
	assert.Equal(t, "2.0.0", report.To)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, "rename-pipeline", report.Steps[0].Name)
	require.Len(t, report.Steps[0].Result.Changes, 1)
	assert.Equal(t, "modified", report.Steps[0].Result.Changes[0].Action)
}

func TestTransformCommand(t *testing.T) {
	root := newProject(t, map[string]string{"turbo.json": `{"pipeline":{"build":{}}}`})

	output, err := runCLI(t, "transform", "set-default-outputs", root, "--force")
	require.NoError(t, err)
	assert.Contains(t, output, "set-default-outputs (1.7.0)")
	assert.Contains(t, output, "modified")

	turbo := readJSON(t, filepath.Join(root, "turbo.json"))
	build := turbo["pipeline"].(map[string]any)["build"].(map[string]any)
	assert.Equal(t, []any{"dist/**", "build/**"}, build["outputs"])
}

func TestTransformCommand_Dry(t *testing.T) {
	original := `{"pipeline":{"build":{}}}`
	root := newProject(t, map[string]string{"turbo.json": original})

	output, err := runCLI(t, "transform", "rename-pipeline", root, "--dry")
	require.NoError(t, err)
	assert.Contains(t, output, "Dry run, no files were written")

	data, err := os.ReadFile(filepath.Join(root, "turbo.json"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestTransformCommand_UnknownCodemod(t *testing.T) {
	_, err := runCLI(t, "transform", "does-not-exist", t.TempDir(), "--dry")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCodemodNotFound)
}

func TestTransformCommand_RequiresName(t *testing.T) {
	_, err := runCLI(t, "transform")
	require.Error(t, err)
	assert.Equal(t, exitcode.UsageError, exitcode.DetermineExitCode(err))
}

func TestListCommand(t *testing.T) {
	output, err := runCLI(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"create-turbo-config", "set-default-outputs", "rename-pipeline"} {
		assert.Contains(t, output, name)
	}
}

func TestListCommand_Range(t *testing.T) {
	output, err := runCLI(t, "--json", "list", "--from", "1.1.0", "--to", "1.7.0")
	require.NoError(t, err)

	var codemods []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &codemods))
	require.Len(t, codemods, 1)
	assert.Equal(t, "set-default-outputs", codemods[0].Name)
	assert.Equal(t, "1.7.0", codemods[0].Version)
}

func TestListCommand_EmptyRange(t *testing.T) {
	output, err := runCLI(t, "--json", "list", "--from", "2.0.0")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, output)
}

func TestListCommand_InvalidVersion(t *testing.T) {
	_, err := runCLI(t, "list", "--from", "not-a-version")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrVersionParse)
}
