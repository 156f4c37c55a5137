// Package utils contains general helper functions used across mapdoc.
package utils

import (
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// MapIgnoreFileName is the name of the mapdoc-specific ignore file.
	MapIgnoreFileName = ".mapignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// NegationPrefix marks ignore patterns that re-include a path.
	NegationPrefix = "!"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the relative path from root to fullPath using
// forward slashes. Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// MergeUnique appends additions to base, skipping blank values and values already present.
// The base slice is never modified.
func MergeUnique(base []string, additions []string) []string {
	merged := append([]string{}, base...)
	for _, addition := range additions {
		trimmedAddition := strings.TrimSpace(addition)
		if trimmedAddition == "" {
			continue
		}
		if !ContainsString(merged, trimmedAddition) {
			merged = append(merged, trimmedAddition)
		}
	}
	return merged
}
