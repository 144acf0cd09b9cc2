package doctor

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var distTagPattern = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// ValidVersion reports whether v is something a package manager accepts
// as a dependency value: a semver constraint, a dist-tag such as "latest",
// or a protocol specifier such as "npm:", "workspace:" or "github:".
func ValidVersion(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if _, err := semver.NewConstraint(v); err == nil {
		return true
	}
	if strings.Contains(v, ":") {
		return true
	}
	return distTagPattern.MatchString(v)
}
