package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

const migratedOldOutputs = `{
	"$schema": "https://turbo.build/schema.json",
	"pipeline": {
		"build-one": {"outputs": ["foo"]},
		"build-two": {"outputs": ["dist/**", "build/**"]},
		"build-three": {"outputs": ["dist/**", "build/**"]}
	}
}`

func TestSetDefaultOutputs_Basic(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/old-outputs")

	result := SetDefaultOutputs(root, runner.Options{})

	require.NoError(t, result.FatalError)
	assert.JSONEq(t, migratedOldOutputs, read(t, root, "turbo.json"))
	assert.Equal(t, []runner.FileChange{
		{Path: "turbo.json", Action: runner.ActionModified, Additions: 2, Deletions: 1},
	}, result.Changes)
}

func TestSetDefaultOutputs_Dry(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/old-outputs")
	before := read(t, root, "turbo.json")

	result := SetDefaultOutputs(root, runner.Options{Dry: true})

	require.NoError(t, result.FatalError)
	assert.Equal(t, before, read(t, root, "turbo.json"))
	assert.Equal(t, []runner.FileChange{
		{Path: "turbo.json", Action: runner.ActionSkipped, Additions: 2, Deletions: 1},
	}, result.Changes)
}

func TestSetDefaultOutputs_Print(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/old-outputs")

	result := SetDefaultOutputs(root, runner.Options{Print: true})

	require.NoError(t, result.FatalError)
	assert.JSONEq(t, migratedOldOutputs, read(t, root, "turbo.json"))
	change, ok := result.Change("turbo.json")
	require.True(t, ok)
	assert.Equal(t, runner.ActionModified, change.Action)
	assert.Equal(t, 2, change.Additions)
	assert.Equal(t, 1, change.Deletions)
	assert.Contains(t, change.Diff, `"dist/**"`)
}

func TestSetDefaultOutputs_DryAndPrint(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/old-outputs")
	before := read(t, root, "turbo.json")

	result := SetDefaultOutputs(root, runner.Options{Dry: true, Print: true})

	require.NoError(t, result.FatalError)
	assert.Equal(t, before, read(t, root, "turbo.json"))
	change, _ := result.Change("turbo.json")
	assert.Equal(t, runner.ActionSkipped, change.Action)
	assert.Equal(t, 2, change.Additions)
	assert.Equal(t, 1, change.Deletions)
	assert.NotEmpty(t, change.Diff)
}

func TestSetDefaultOutputs_InvalidOutputs(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/invalid-outputs")

	result := SetDefaultOutputs(root, runner.Options{})

	require.NoError(t, result.FatalError)
	assert.JSONEq(t, `{
		"$schema": "https://turbo.build/schema.json",
		"pipeline": {
			"build-one": {"outputs": ["foo"]},
			"build-two": {"outputs": ["dist/**", "build/**"]},
			"build-three": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-numeric-0": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-numeric": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-string": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-empty-string": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-null": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-false": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-true": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-object": {"outputs": ["dist/**", "build/**"]},
			"garbage-in-mixed-array": {"outputs": ["dist/**", "build/**"]},
			"not-a-task-object": "build"
		}
	}`, read(t, root, "turbo.json"))
	assert.Equal(t, []runner.FileChange{
		{Path: "turbo.json", Action: runner.ActionModified, Additions: 11, Deletions: 10},
	}, result.Changes)
}

func TestSetDefaultOutputs_NoPipeline(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/no-pipeline")
	before := read(t, root, "turbo.json")

	result := SetDefaultOutputs(root, runner.Options{})

	require.NoError(t, result.FatalError)
	assert.Equal(t, before, read(t, root, "turbo.json"))
	assert.Equal(t, []runner.FileChange{
		{Path: "turbo.json", Action: runner.ActionUnchanged},
	}, result.Changes)
}

func TestSetDefaultOutputs_NoOutputs(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/no-outputs")

	result := SetDefaultOutputs(root, runner.Options{})

	require.NoError(t, result.FatalError)
	assert.JSONEq(t, `{
		"$schema": "https://turbo.build/schema.json",
		"pipeline": {
			"build-one": {"dependsOn": ["build-two"], "outputs": ["dist/**", "build/**"]},
			"build-two": {"cache": false, "outputs": ["dist/**", "build/**"]},
			"build-three": {"persistent": true, "outputs": ["dist/**", "build/**"]}
		}
	}`, read(t, root, "turbo.json"))
	assert.Equal(t, []runner.FileChange{
		{Path: "turbo.json", Action: runner.ActionModified, Additions: 3},
	}, result.Changes)
	assert.Equal(t, []string{"$schema", "pipeline"}, keysOf(t, root, "turbo.json"))
}

func TestSetDefaultOutputs_PrefersTasksKey(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/tasks-key")

	result := SetDefaultOutputs(root, runner.Options{})

	require.NoError(t, result.FatalError)
	assert.JSONEq(t, `{
		"$schema": "https://turbo.build/schema.json",
		"tasks": {
			"lint": {"outputs": ["dist/**", "build/**"]},
			"build": {"outputs": [".next/**"]}
		},
		"pipeline": {"ignored": {}}
	}`, read(t, root, "turbo.json"))
	change, _ := result.Change("turbo.json")
	assert.Equal(t, 1, change.Additions)
	assert.Equal(t, 0, change.Deletions)
}

func TestSetDefaultOutputs_Idempotent(t *testing.T) {
	for _, fixture := range []string{
		"set-default-outputs/old-outputs",
		"set-default-outputs/invalid-outputs",
		"set-default-outputs/no-outputs",
		"set-default-outputs/no-pipeline",
	} {
		t.Run(fixture, func(t *testing.T) {
			root := loadFixture(t, fixture)

			first := SetDefaultOutputs(root, runner.Options{})
			require.NoError(t, first.FatalError)
			migrated := read(t, root, "turbo.json")

			second := SetDefaultOutputs(root, runner.Options{})
			require.NoError(t, second.FatalError)
			assert.Equal(t, []runner.FileChange{
				{Path: "turbo.json", Action: runner.ActionUnchanged},
			}, second.Changes)
			assert.Equal(t, migrated, read(t, root, "turbo.json"))
		})
	}
}

func TestSetDefaultOutputs_NoTurboJSON(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/no-turbo-json")

	result := SetDefaultOutputs(root, runner.Options{Force: true})

	require.Error(t, result.FatalError)
	assert.ErrorIs(t, result.FatalError, errors.ErrConfigNotFound)
	assert.Regexp(t, `No turbo\.json found at .*?\. Is the path correct\?`, result.FatalError.Error())
	assert.Empty(t, result.Changes)
	assert.False(t, exists(t, root, "turbo.json"))
}

func TestSetDefaultOutputs_OldConfig(t *testing.T) {
	for _, force := range []bool{false, true} {
		root := loadFixture(t, "set-default-outputs/old-config")

		result := SetDefaultOutputs(root, runner.Options{Force: force})

		require.Error(t, result.FatalError, "force=%v", force)
		assert.ErrorIs(t, result.FatalError, errors.ErrPrerequisiteNotMigrated)
		assert.Contains(t, result.FatalError.Error(),
			"turbo\" key detected in package.json. Run `npx @turbo/codemod create-turbo-config` first")
		assert.Empty(t, result.Changes)
	}
}

func TestSetDefaultOutputs_LeftoverConfig(t *testing.T) {
	t.Run("guarded without force", func(t *testing.T) {
		root := loadFixture(t, "set-default-outputs/leftover-config")
		before := read(t, root, "turbo.json")

		result := SetDefaultOutputs(root, runner.Options{})

		assert.ErrorIs(t, result.FatalError, errors.ErrPrerequisiteNotMigrated)
		assert.Equal(t, before, read(t, root, "turbo.json"))
	})

	t.Run("force bypasses", func(t *testing.T) {
		root := loadFixture(t, "set-default-outputs/leftover-config")
		pkg := read(t, root, "package.json")
		logs := captureLogs(t)

		result := SetDefaultOutputs(root, runner.Options{Force: true})

		require.NoError(t, result.FatalError)
		assert.Contains(t, logs.String(), "ignoring legacy config key")
		assert.Equal(t, []runner.FileChange{
			{Path: "turbo.json", Action: runner.ActionModified, Additions: 1},
		}, result.Changes)
		assert.Equal(t, pkg, read(t, root, "package.json"))
	})
}

func TestSetDefaultOutputs_Malformed(t *testing.T) {
	root := loadFixture(t, "set-default-outputs/malformed")

	result := SetDefaultOutputs(root, runner.Options{})

	assert.ErrorIs(t, result.FatalError, errors.ErrMalformedDocument)
	assert.Empty(t, result.Changes)
}

func TestValidOutputs(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"strings", []any{"dist/**"}, true},
		{"empty", []any{}, false},
		{"mixed", []any{"a", 1}, false},
		{"string", "dist/**", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validOutputs(tt.in))
		})
	}
}
