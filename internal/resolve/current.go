// Package resolve determines the turbo version a project is on and the
// version it should move to.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/errors"
)

// PackageName is the npm package whose version is migrated.
const PackageName = "turbo"

const (
	manifestFile = "package.json"
	pnpmLockFile = "pnpm-lock.yaml"
)

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type pnpmLock struct {
	Importers    map[string]pnpmImporter `yaml:"importers"`
	pnpmImporter `yaml:",inline"`
}

type pnpmImporter struct {
	Dependencies    map[string]pnpmDependency `yaml:"dependencies"`
	DevDependencies map[string]pnpmDependency `yaml:"devDependencies"`
}

// pnpmDependency accepts both the scalar form of older lockfiles and the
// {specifier, version} mapping of newer ones.
type pnpmDependency struct {
	Version string
}

func (d *pnpmDependency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Version = node.Value
		return nil
	}
	var entry struct {
		Version string `yaml:"version"`
	}
	if err := node.Decode(&entry); err != nil {
		return err
	}
	d.Version = entry.Version
	return nil
}

// CurrentVersion returns the turbo version used by the project at root.
// The pnpm lockfile wins over package.json because it pins the installed
// version; package.json ranges are reduced to their lower bound.
func CurrentVersion(root string) (string, error) {
	if v, ok, err := versionFromPnpmLock(root); err != nil || ok {
		return v, err
	}
	if v, ok, err := versionFromManifest(root); err != nil || ok {
		return v, err
	}
	return "", errors.New(errors.CodeVersionUndetected,
		fmt.Sprintf("Unable to infer the version of turbo being used by %s", root)).
		WithSuggestion("Pass the installed version with --from")
}

func versionFromManifest(root string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, manifestFile))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to read %s", manifestFile), err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", false, errors.NewMalformedDocumentError(manifestFile, err)
	}

	for _, deps := range []map[string]string{m.DevDependencies, m.Dependencies} {
		if spec, ok := deps[PackageName]; ok {
			if v, ok := exactVersion(spec); ok {
				return v, true, nil
			}
		}
	}
	return "", false, nil
}

func versionFromPnpmLock(root string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, pnpmLockFile))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.CodeIO, fmt.Sprintf("failed to read %s", pnpmLockFile), err)
	}

	var lock pnpmLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return "", false, errors.Wrap(errors.CodeMalformedDocument, fmt.Sprintf("%s is not a valid lockfile", pnpmLockFile), err)
	}

	importers := []pnpmImporter{lock.pnpmImporter}
	if rootImporter, ok := lock.Importers["."]; ok {
		importers = append([]pnpmImporter{rootImporter}, importers...)
	}
	for _, imp := range importers {
		for _, deps := range []map[string]pnpmDependency{imp.DevDependencies, imp.Dependencies} {
			if dep, ok := deps[PackageName]; ok {
				if v, ok := exactVersion(dep.Version); ok {
					return v, true, nil
				}
			}
		}
	}
	return "", false, nil
}

// exactVersion reduces a dependency spec such as "^1.6.3",
// "1.6.3(react@18.2.0)" or ">=1.2.0 <2.0.0" to a plain version, the lower
// bound for ranges. Tags and workspace protocols have no version.
func exactVersion(spec string) (string, bool) {
	v := strings.TrimSpace(spec)
	if i := strings.IndexByte(v, '('); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimLeft(v, "^~>=v ")
	v, _, _ = strings.Cut(v, " ")
	if _, err := catalog.ParseVersion(v); err != nil {
		return "", false
	}
	return v, true
}
