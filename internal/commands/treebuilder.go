package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/mapdoc/internal/ignore"
	"github.com/temirov/mapdoc/internal/output"
)

const directorySuffix = "/"

// TreeBuilder renders the project structure as ASCII tree lines.
type TreeBuilder struct {
	Policy ignore.Policy
	Logger *zap.Logger
}

// Build returns the tree lines for rootDirectoryPath. Files are listed before
// directories at each level and the last entry receives the corner glyph.
// Only a failure to read the root itself is returned; unreadable
// subdirectories are logged and rendered without children.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) ([]string, error) {
	var lines []string
	rootListing, readError := readDirectoryListing(rootDirectoryPath, treeBuilder.Policy, treeBuilder.warn)
	if readError != nil {
		return nil, readError
	}
	treeBuilder.appendListing(&lines, rootListing, "")
	return lines, nil
}

func (treeBuilder *TreeBuilder) appendListing(lines *[]string, listing directoryListing, prefix string) {
	for fileIndex, fileEntry := range listing.files {
		isLast := fileIndex == len(listing.files)-1 && len(listing.directories) == 0
		linePrefix, _ := output.TreeConnectors(prefix, isLast)
		*lines = append(*lines, linePrefix+fileEntry.name)
	}

	for directoryIndex, directoryEntry := range listing.directories {
		isLast := directoryIndex == len(listing.directories)-1
		linePrefix, childPrefix := output.TreeConnectors(prefix, isLast)
		*lines = append(*lines, linePrefix+directoryEntry.name+directorySuffix)
		if !directoryEntry.descend {
			continue
		}
		childListing, readError := readDirectoryListing(directoryEntry.absolutePath, treeBuilder.Policy, treeBuilder.warn)
		if readError != nil {
			treeBuilder.warn(warningSkipSubdirMessage, directoryEntry.absolutePath, readError)
			continue
		}
		treeBuilder.appendListing(lines, childListing, childPrefix)
	}
}

func (treeBuilder *TreeBuilder) warn(message string, path string, err error) {
	if treeBuilder.Logger == nil {
		return
	}
	treeBuilder.Logger.Warn(message, zap.String("path", path), zap.Error(err))
}
