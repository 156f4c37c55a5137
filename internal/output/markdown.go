// Package output renders the generated project document as Markdown.
package output

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/temirov/mapdoc/internal/types"
	"github.com/temirov/mapdoc/internal/utils"
)

const (
	codeFence = "```"

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	documentTitleFormat   = "# Project Documentation: %s\n\n"
	projectInfoHeading    = "## Project Info\n\n"
	readmeHeading         = "## README\n\n"
	structureHeading      = "## Structure\n\n"
	listingsHeading       = "## File Listings\n\n"
	conclusionHeading     = "## Conclusion\n\n"
	excludedHeading       = "\n### Excluded Patterns\n\n"
	listingHeadingFormat  = "### %s\n\n"
	projectNameFormat     = "- **Project name**: %s\n"
	projectPathFormat     = "- **Path**: %s\n"
	goModuleFormat        = "- **Go module**: %s (go %s, %d requirements)\n"
	generatedDateFormat   = "- **Documentation generated**: %s\n\n"
	readmeErrorFormat     = "[Error reading README: %v]\n\n"
	fileErrorFormat       = "[Error reading file: %v]"
	binaryPlaceholder     = "[Binary file]"
	conclusionSentence    = "This documentation was generated automatically for project review.\n"
	conclusionSummaryLine = "Files listed: %d (text: %d, binary: %d, unreadable: %d), total size: %s.\n"
	excludedIntroduction  = "The following exclusion rules were applied while generating this document:\n\n"
)

// TreeConnectors returns the glyph prefix for an entry and the prefix its children inherit.
func TreeConnectors(prefix string, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

// MarkdownWriter writes document sections sequentially. The first write error
// is retained and every later call becomes a no-op; Flush reports it.
type MarkdownWriter struct {
	writer *bufio.Writer
	err    error
}

// NewMarkdownWriter buffers output to destination.
func NewMarkdownWriter(destination io.Writer) *MarkdownWriter {
	return &MarkdownWriter{writer: bufio.NewWriter(destination)}
}

func (markdownWriter *MarkdownWriter) printf(format string, arguments ...any) {
	if markdownWriter.err != nil {
		return
	}
	_, markdownWriter.err = fmt.Fprintf(markdownWriter.writer, format, arguments...)
}

func (markdownWriter *MarkdownWriter) write(text string) {
	if markdownWriter.err != nil {
		return
	}
	_, markdownWriter.err = markdownWriter.writer.WriteString(text)
}

// WriteHeader writes the title and the Project Info section.
func (markdownWriter *MarkdownWriter) WriteHeader(info types.ProjectInfo) {
	markdownWriter.printf(documentTitleFormat, info.Name)
	markdownWriter.write(projectInfoHeading)
	markdownWriter.printf(projectNameFormat, info.Name)
	markdownWriter.printf(projectPathFormat, info.AbsolutePath)
	if info.Module != nil && info.Module.Path != "" {
		goVersion := info.Module.GoVersion
		if goVersion == "" {
			goVersion = "unspecified"
		}
		markdownWriter.printf(goModuleFormat, info.Module.Path, goVersion, info.Module.Requires)
	}
	markdownWriter.printf(generatedDateFormat, info.GeneratedDate)
}

// WriteReadme writes the README section with content, or an inline notice when readError is set.
func (markdownWriter *MarkdownWriter) WriteReadme(content string, readError error) {
	markdownWriter.write(readmeHeading)
	if readError != nil {
		markdownWriter.printf(readmeErrorFormat, readError)
		return
	}
	markdownWriter.write(content)
	markdownWriter.write("\n\n")
}

// WriteTree writes the Structure section as a fenced block.
func (markdownWriter *MarkdownWriter) WriteTree(lines []string) {
	markdownWriter.write(structureHeading)
	markdownWriter.write(codeFence + "\n")
	markdownWriter.write(strings.Join(lines, "\n"))
	markdownWriter.write("\n" + codeFence + "\n\n")
}

// WriteListingsHeading opens the File Listings section.
func (markdownWriter *MarkdownWriter) WriteListingsHeading() {
	markdownWriter.write(listingsHeading)
}

// WriteBinaryListing writes the placeholder block for a file that is not text.
func (markdownWriter *MarkdownWriter) WriteBinaryListing(entry types.FileEntry) {
	markdownWriter.printf(listingHeadingFormat, entry.RelativePath)
	markdownWriter.write(codeFence + "\n" + binaryPlaceholder + "\n" + codeFence + "\n\n")
}

// WriteTextListing writes a fenced block for a text file. The fence's info
// string is the lower-case extension; readError replaces content with a notice.
func (markdownWriter *MarkdownWriter) WriteTextListing(entry types.FileEntry, content string, readError error) {
	markdownWriter.printf(listingHeadingFormat, entry.RelativePath)
	markdownWriter.write(codeFence + LanguageHint(entry.RelativePath) + "\n")
	if readError != nil {
		markdownWriter.printf(fileErrorFormat, readError)
	} else {
		markdownWriter.write(content)
	}
	markdownWriter.write("\n" + codeFence + "\n\n")
}

// WriteConclusion writes the closing section with the listing summary.
func (markdownWriter *MarkdownWriter) WriteConclusion(summary types.ListingSummary) {
	markdownWriter.write(conclusionHeading)
	markdownWriter.write(conclusionSentence)
	markdownWriter.printf(conclusionSummaryLine, summary.TotalFiles, summary.TextFiles, summary.BinaryFiles, summary.FailedReads, utils.FormatFileSize(summary.TotalBytes))
}

// WriteExcludedPatterns lists every active ignore pattern verbatim. Nothing is
// written when patterns is empty.
func (markdownWriter *MarkdownWriter) WriteExcludedPatterns(patterns []string) {
	if len(patterns) == 0 {
		return
	}
	markdownWriter.write(excludedHeading)
	markdownWriter.write(excludedIntroduction)
	markdownWriter.write(codeFence + "\n")
	for _, pattern := range patterns {
		markdownWriter.write(pattern + "\n")
	}
	markdownWriter.write(codeFence + "\n")
}

// Flush writes buffered data and returns the first error encountered.
func (markdownWriter *MarkdownWriter) Flush() error {
	if markdownWriter.err != nil {
		return markdownWriter.err
	}
	markdownWriter.err = markdownWriter.writer.Flush()
	return markdownWriter.err
}

// LanguageHint returns the lower-case extension of a slash-separated path without its dot.
func LanguageHint(relativePath string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(relativePath), "."))
}
