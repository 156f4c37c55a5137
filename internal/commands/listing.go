package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/mapdoc/internal/classifier"
	"github.com/temirov/mapdoc/internal/ignore"
	"github.com/temirov/mapdoc/internal/types"
	"github.com/temirov/mapdoc/internal/utils"
)

// ListingWalker visits every kept file depth first: a directory's files in
// name order, then each subdirectory in name order. Excluded directories are
// pruned before descent.
type ListingWalker struct {
	Policy     ignore.Policy
	Classifier classifier.Classifier
	Logger     *zap.Logger
}

// Walk calls visit for each kept file under rootDirectoryPath. A visit error
// stops the walk and is returned, as is a failure to read the root.
func (walker *ListingWalker) Walk(rootDirectoryPath string, visit func(types.FileEntry) error) error {
	rootListing, readError := readDirectoryListing(rootDirectoryPath, walker.Policy, walker.warn)
	if readError != nil {
		return readError
	}
	return walker.walkListing(rootDirectoryPath, rootListing, visit)
}

func (walker *ListingWalker) walkListing(rootDirectoryPath string, listing directoryListing, visit func(types.FileEntry) error) error {
	for _, fileEntry := range listing.files {
		classification := types.ClassificationBinary
		if walker.Classifier.IsText(fileEntry.absolutePath) {
			classification = types.ClassificationText
		}
		visitError := visit(types.FileEntry{
			AbsolutePath:   fileEntry.absolutePath,
			RelativePath:   utils.RelativePathOrSelf(fileEntry.absolutePath, rootDirectoryPath),
			Classification: classification,
			SizeBytes:      fileEntry.sizeBytes,
		})
		if visitError != nil {
			return visitError
		}
	}

	for _, directoryEntry := range listing.directories {
		if !directoryEntry.descend {
			continue
		}
		childListing, readError := readDirectoryListing(directoryEntry.absolutePath, walker.Policy, walker.warn)
		if readError != nil {
			walker.warn(warningSkipSubdirMessage, directoryEntry.absolutePath, readError)
			continue
		}
		if walkError := walker.walkListing(rootDirectoryPath, childListing, visit); walkError != nil {
			return walkError
		}
	}
	return nil
}

func (walker *ListingWalker) warn(message string, path string, err error) {
	if walker.Logger == nil {
		return
	}
	walker.Logger.Warn(message, zap.String("path", path), zap.Error(err))
}
