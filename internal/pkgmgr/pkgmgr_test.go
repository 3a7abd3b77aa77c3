package pkgmgr

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return root
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  Project
		ok    bool
	}{
		{
			name:  "packageManager field",
			files: map[string]string{"package.json": `{"packageManager":"pnpm@8.6.0"}`, "yarn.lock": ""},
			want:  Project{Manager: PNPM},
			ok:    true,
		},
		{
			name:  "pnpm workspace",
			files: map[string]string{"package.json": `{}`, "pnpm-lock.yaml": "", "pnpm-workspace.yaml": "packages: []"},
			want:  Project{Manager: PNPM, Workspace: true},
			ok:    true,
		},
		{
			name:  "yarn workspaces",
			files: map[string]string{"package.json": `{"workspaces":["apps/*"]}`, "yarn.lock": ""},
			want:  Project{Manager: Yarn, Workspace: true},
			ok:    true,
		},
		{
			name:  "bun",
			files: map[string]string{"bun.lockb": ""},
			want:  Project{Manager: Bun},
			ok:    true,
		},
		{
			name:  "npm",
			files: map[string]string{"package.json": `{"name":"x"}`, "package-lock.json": "{}"},
			want:  Project{Manager: NPM},
			ok:    true,
		},
		{
			name:  "unknown packageManager falls back to lockfile",
			files: map[string]string{"package.json": `{"packageManager":"deno@1.0.0"}`, "package-lock.json": "{}"},
			want:  Project{Manager: NPM},
			ok:    true,
		},
		{
			name:  "nothing",
			files: map[string]string{"package.json": `{}`},
			want:  Project{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Detect(project(t, tt.files))
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_MalformedManifest(t *testing.T) {
	_, _, err := Detect(project(t, map[string]string{"package.json": `{`}))
	assert.Error(t, err)
}

func TestUpgradeCommand(t *testing.T) {
	tests := []struct {
		project Project
		want    string
	}{
		{Project{Manager: NPM}, "npm install turbo@2.0.0 --save-dev"},
		{Project{Manager: Yarn}, "yarn add turbo@2.0.0 --dev"},
		{Project{Manager: Yarn, Workspace: true}, "yarn add turbo@2.0.0 --dev -W"},
		{Project{Manager: PNPM}, "pnpm add turbo@2.0.0 --save-dev"},
		{Project{Manager: PNPM, Workspace: true}, "pnpm add turbo@2.0.0 --save-dev -w"},
		{Project{Manager: Bun, Workspace: true}, "bun add turbo@2.0.0 --dev"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.UpgradeCommand("2.0.0").String())
		})
	}
}

func TestExecInstaller(t *testing.T) {
	var stdout bytes.Buffer
	installer := &ExecInstaller{Stdout: &stdout}
	root := t.TempDir()

	require.NoError(t, installer.Install(context.Background(), root, Command{"sh", "-c", "pwd"}))
	assert.Contains(t, stdout.String(), filepath.Base(root))

	err := installer.Install(context.Background(), root, Command{"sh", "-c", "exit 3"})
	assert.ErrorContains(t, err, "exit 3")

	assert.Error(t, installer.Install(context.Background(), root, nil))
}
