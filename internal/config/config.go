// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/mapdoc/internal/utils"
)

const (
	// commentMarker starts a comment that runs to the end of the line.
	commentMarker = '#'
	// escapeMarker makes the following comment marker literal.
	escapeMarker = '\\'

	errorLoadIgnoreFileFormat = "loading %s from %s: %w"
)

var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// RuleSources selects which ignore files in the project root contribute patterns.
type RuleSources struct {
	UseGitignore bool
	UseMapignore bool
}

// LoadIgnoreFilePatterns reads an ignore file and returns its patterns in file order.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileContent, readError := os.ReadFile(ignoreFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, readError
	}
	return ParseIgnorePatterns(fileContent)
}

// ParseIgnorePatterns extracts one pattern per line. A leading UTF-8 byte order
// mark is dropped, text after the first unescaped '#' is discarded, "\#" becomes
// a literal '#', and surrounding whitespace is trimmed. Empty lines are skipped.
func ParseIgnorePatterns(fileContent []byte) ([]string, error) {
	var patterns []string
	content := bytes.TrimPrefix(fileContent, utf8ByteOrderMark)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	// A single line may span the whole file.
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(content)+1, bufio.MaxScanTokenSize))
	for scanner.Scan() {
		pattern := strings.TrimSpace(stripComment(scanner.Text()))
		if pattern == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

func stripComment(line string) string {
	var builder strings.Builder
	for index := 0; index < len(line); index++ {
		character := line[index]
		if character == escapeMarker && index+1 < len(line) && line[index+1] == commentMarker {
			builder.WriteByte(commentMarker)
			index++
			continue
		}
		if character == commentMarker {
			break
		}
		builder.WriteByte(character)
	}
	return builder.String()
}

// LoadRuleSources aggregates patterns from the project root: .gitignore first,
// then .mapignore, each only when enabled. Order is preserved and duplicates
// are kept because evaluation is order sensitive.
func LoadRuleSources(absoluteRootPath string, sources RuleSources) ([]string, error) {
	var combinedPatterns []string

	if sources.UseGitignore {
		gitIgnorePatterns, loadError := LoadIgnoreFilePatterns(filepath.Join(absoluteRootPath, utils.GitIgnoreFileName))
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.GitIgnoreFileName, absoluteRootPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, gitIgnorePatterns...)
	}

	if sources.UseMapignore {
		mapIgnorePatterns, loadError := LoadIgnoreFilePatterns(filepath.Join(absoluteRootPath, utils.MapIgnoreFileName))
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.MapIgnoreFileName, absoluteRootPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, mapIgnorePatterns...)
	}

	return combinedPatterns, nil
}
