package ignore

import (
	"strings"

	"github.com/gobwas/glob"
)

// shellMetaEscaper escapes the characters gobwas/glob treats specially but shell
// wildcards treat literally, so only *, ? and [...] keep their meaning.
var shellMetaEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// shellGlob matches a string with shell wildcard semantics where * also crosses
// path separators.
type shellGlob struct {
	source   string
	compiled glob.Glob
}

const (
	classOpen     = '['
	classClose    = ']'
	classNegation = '!'
)

// compileShellGlob compiles pattern. A pattern that still does not compile
// falls back to literal comparison.
func compileShellGlob(pattern string) shellGlob {
	compiledGlob, compileError := glob.Compile(translateShellPattern(pattern))
	if compileError != nil {
		return shellGlob{source: pattern}
	}
	return shellGlob{source: pattern, compiled: compiledGlob}
}

func (pattern shellGlob) match(candidate string) bool {
	if pattern.compiled == nil {
		return candidate == pattern.source
	}
	return pattern.compiled.Match(candidate)
}

// matchesAny reports whether the glob matches any of the candidates.
func (pattern shellGlob) matchesAny(candidates ...string) bool {
	for _, candidate := range candidates {
		if pattern.match(candidate) {
			return true
		}
	}
	return false
}

// translateShellPattern escapes pattern for gobwas/glob. A "[" without a
// closing "]" is a literal character, as in shell wildcards.
func translateShellPattern(pattern string) string {
	patternRunes := []rune(pattern)
	var builder strings.Builder
	for index := 0; index < len(patternRunes); index++ {
		if patternRunes[index] != classOpen {
			builder.WriteString(shellMetaEscaper.Replace(string(patternRunes[index])))
			continue
		}
		closingIndex := classEnd(patternRunes, index)
		if closingIndex < 0 {
			builder.WriteString(`\[`)
			continue
		}
		builder.WriteString(shellMetaEscaper.Replace(string(patternRunes[index : closingIndex+1])))
		index = closingIndex
	}
	return builder.String()
}

// classEnd returns the index of the "]" closing the class opened at openIndex,
// or -1. A "]" directly after "[" or "[!" belongs to the class.
func classEnd(patternRunes []rune, openIndex int) int {
	index := openIndex + 1
	if index < len(patternRunes) && patternRunes[index] == classNegation {
		index++
	}
	if index < len(patternRunes) && patternRunes[index] == classClose {
		index++
	}
	for ; index < len(patternRunes); index++ {
		if patternRunes[index] == classClose {
			return index
		}
	}
	return -1
}
