package ignore

import (
	"path/filepath"
)

// Policy is the exclusion predicate shared by the tree renderer and the listing walk.
// The zero value excludes nothing.
type Policy struct {
	Root      string
	Rules     *RuleSet
	Denylists Denylists
	// SkipPaths holds absolute paths that are never visited, such as the document being written.
	SkipPaths []string
}

// Excludes applies, in order, the skip paths, the rule set, and then the
// directory denylist for directories or the suffix denylist for files.
func (policy Policy) Excludes(absolutePath string, isDirectory bool) bool {
	cleanPath := filepath.Clean(absolutePath)
	for _, skipPath := range policy.SkipPaths {
		if skipPath != "" && filepath.Clean(skipPath) == cleanPath {
			return true
		}
	}

	if isDirectory {
		if policy.Rules.MatchesDirectory(cleanPath, policy.Root) {
			return true
		}
		return policy.Denylists.ExcludesDirectory(filepath.Base(cleanPath))
	}

	if policy.Rules.Matches(cleanPath, policy.Root) {
		return true
	}
	return policy.Denylists.ExcludesFile(filepath.Base(cleanPath))
}
