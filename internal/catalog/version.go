package catalog

import (
	"strings"

	"github.com/blang/semver"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
)

// ParseVersion parses a semantic version, accepting a leading "v".
// Missing minor or patch components are not accepted.
func ParseVersion(s string) (semver.Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	v, err := semver.Parse(trimmed)
	if err != nil {
		return semver.Version{}, errors.NewVersionParseError(s, err)
	}
	return v, nil
}
