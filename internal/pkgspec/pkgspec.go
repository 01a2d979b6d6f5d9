package pkgspec

import (
	"regexp"
	"strings"
)

// DefaultVersion is used when a spec carries no explicit version. It sorts
// above any real release so resolvers treat the requirement as satisfied.
const DefaultVersion = "9999.99.99"

const separator = "=="

// Spec is a package name and version taken from a single command line token.
type Spec struct {
	Name    string // as given by the user, not normalized
	Version string // opaque, never validated
}

var separatorRunRe = regexp.MustCompile(`[-.]+`)

// Parse splits token on the first "==". Without a separator the version
// falls back to DefaultVersion.
func Parse(token string) Spec {
	return ParseWithDefault(token, DefaultVersion)
}

// ParseWithDefault is Parse with a caller supplied fallback version.
func ParseWithDefault(token, defaultVersion string) Spec {
	name, version, found := strings.Cut(token, separator)
	if !found {
		return Spec{Name: token, Version: defaultVersion}
	}
	return Spec{Name: name, Version: version}
}

// Normalize collapses runs of '-' and '.' into '_' and lower-cases the
// result. The output is the prefix used for dist-info directory names.
func Normalize(name string) string {
	return strings.ToLower(separatorRunRe.ReplaceAllString(name, "_"))
}

// Normalized returns the normalized form of s.Name.
func (s Spec) Normalized() string {
	return Normalize(s.Name)
}

func (s Spec) String() string {
	return s.Name + separator + s.Version
}
