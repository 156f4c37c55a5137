// Package classifier decides whether a project file is human-readable text.
package classifier

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/temirov/mapdoc/internal/encoding"
	"github.com/temirov/mapdoc/internal/utils"
)

const (
	// sampleLength is the number of decoded characters inspected.
	sampleLength = 1024
	// printableThreshold is the printable share a sample must exceed to count as text.
	printableThreshold = 0.8
)

// Classifier holds the allow-lists consulted before content is inspected.
type Classifier struct {
	TextExtensions []string
	TextFileNames  []string
}

// Default returns a Classifier with the built-in allow-lists.
func Default() Classifier {
	return Classifier{
		TextExtensions: []string{
			".txt", ".py", ".json", ".yml", ".yaml", ".md",
			".html", ".css", ".js", ".csv", ".log",
			".ini", ".cfg", ".conf", ".xml", ".toml",
			".rst", ".requirements", ".dockerignore", ".gitignore",
			".env", ".sh", ".bat", ".cmd",
		},
		TextFileNames: []string{
			"requirements.txt", "Dockerfile", "docker-compose.yml",
			".env", "README", "CHANGELOG", "CONTRIBUTING",
		},
	}
}

// IsText reports whether path holds text. Known extensions and file names
// short-circuit; otherwise the first characters of the decoded content must be
// mostly printable. Read and decode failures and empty files count as binary.
func (classifier Classifier) IsText(path string) bool {
	if utils.ContainsString(classifier.TextExtensions, strings.ToLower(filepath.Ext(path))) {
		return true
	}
	if utils.ContainsString(classifier.TextFileNames, filepath.Base(path)) {
		return true
	}
	content, _, decodeError := encoding.DecodeFile(path)
	if decodeError != nil {
		return false
	}
	return IsPrintableSample(content)
}

// IsPrintableSample reports whether more than 80% of the first 1024 characters
// of content are printable or whitespace. Empty content is not text.
func IsPrintableSample(content string) bool {
	var inspected, printable int
	for _, character := range content {
		if inspected == sampleLength {
			break
		}
		inspected++
		if unicode.IsPrint(character) || unicode.IsSpace(character) {
			printable++
		}
	}
	if inspected == 0 {
		return false
	}
	return float64(printable)/float64(inspected) > printableThreshold
}

// IsText classifies path with the default allow-lists.
func IsText(path string) bool {
	return Default().IsText(path)
}
