// Package ignore resolves which project paths are excluded from a generated document.
//
// A RuleSet holds glob patterns read from ignore files, evaluated in order with
// the first decisive match winning: a matching negated pattern ("!glob") keeps
// the path, a matching ordinary pattern excludes it. Denylists hold exact
// directory names and file suffixes applied independently of glob negation.
// Policy combines both into the single predicate used by every walk.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/temirov/mapdoc/internal/utils"
)

const directoryMarker = "/"

type rule struct {
	source    string
	negated   bool
	glob      shellGlob
	directory shellGlob
}

// RuleSet is an ordered, immutable list of ignore patterns.
type RuleSet struct {
	patterns []string
	rules    []rule
}

// NewRuleSet compiles patterns in the given order. Blank patterns are dropped.
func NewRuleSet(patterns []string) *RuleSet {
	ruleSet := &RuleSet{}
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		globText := pattern
		negated := strings.HasPrefix(pattern, utils.NegationPrefix)
		if negated {
			globText = strings.TrimPrefix(pattern, utils.NegationPrefix)
		}
		directoryText := globText
		if trimmed := strings.TrimSuffix(globText, directoryMarker); trimmed != "" {
			directoryText = trimmed
		}
		ruleSet.patterns = append(ruleSet.patterns, pattern)
		ruleSet.rules = append(ruleSet.rules, rule{
			source:    pattern,
			negated:   negated,
			glob:      compileShellGlob(globText),
			directory: compileShellGlob(directoryText),
		})
	}
	return ruleSet
}

// Patterns returns the stored patterns verbatim and in evaluation order.
func (ruleSet *RuleSet) Patterns() []string {
	if ruleSet == nil {
		return nil
	}
	return append([]string{}, ruleSet.patterns...)
}

// Len returns the number of stored patterns.
func (ruleSet *RuleSet) Len() int {
	if ruleSet == nil {
		return 0
	}
	return len(ruleSet.rules)
}

// Matches reports whether path should be excluded. Each pattern is tried against
// the root-relative slash path and the basename. Patterns are evaluated in
// order and the first one that matches decides: a negated pattern returns false,
// an ordinary pattern returns true. No match returns false.
func (ruleSet *RuleSet) Matches(path string, root string) bool {
	return ruleSet.evaluate(path, root, false)
}

// MatchesDirectory is Matches for a directory path where a pattern's trailing
// "/" marks it as applying to directories: "build/" is compared as "build".
func (ruleSet *RuleSet) MatchesDirectory(path string, root string) bool {
	return ruleSet.evaluate(path, root, true)
}

func (ruleSet *RuleSet) evaluate(path string, root string, directory bool) bool {
	if ruleSet.Len() == 0 {
		return false
	}
	relativePath := utils.RelativePathOrSelf(path, root)
	baseName := filepath.Base(path)
	for _, currentRule := range ruleSet.rules {
		pattern := currentRule.glob
		if directory {
			pattern = currentRule.directory
		}
		if !pattern.matchesAny(relativePath, baseName) {
			continue
		}
		return !currentRule.negated
	}
	return false
}
