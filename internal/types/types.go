// Package types defines the cross-package data structures used by mapdoc.
package types

const (
	ClassificationText   = "text"
	ClassificationBinary = "binary"
)

// ValidatedPath is an absolute project root that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// FileEntry describes one file listed while documenting a project.
type FileEntry struct {
	AbsolutePath   string
	RelativePath   string
	Classification string
	SizeBytes      int64
}

// IsText reports whether the entry's content should be inlined.
func (entry FileEntry) IsText() bool {
	return entry.Classification == ClassificationText
}

// ModuleInfo carries Go module metadata discovered in the project root.
type ModuleInfo struct {
	Path      string
	GoVersion string
	Requires  int
}

// ProjectInfo is the metadata written at the top of a generated document.
type ProjectInfo struct {
	Name          string
	AbsolutePath  string
	GeneratedDate string
	Module        *ModuleInfo
}

// ListingSummary aggregates the files written to the File Listings section.
type ListingSummary struct {
	TotalFiles  int
	TextFiles   int
	BinaryFiles int
	FailedReads int
	TotalBytes  int64
}

// Add records one listed entry.
func (summary *ListingSummary) Add(entry FileEntry) {
	summary.TotalFiles++
	summary.TotalBytes += entry.SizeBytes
	if entry.IsText() {
		summary.TextFiles++
		return
	}
	summary.BinaryFiles++
}
