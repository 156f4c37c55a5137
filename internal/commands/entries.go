// Package commands contains the document generation pipeline: the directory
// tree, the per-file listing walk, and the assembler that writes both.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/temirov/mapdoc/internal/ignore"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"

	warningSkipSubdirMessage = "skipping unreadable subdirectory"
	warningStatPathMessage   = "unable to stat path"
)

// walkEntry is one entry that survived the exclusion policy.
type walkEntry struct {
	name         string
	absolutePath string
	isDirectory  bool
	// descend is false for symbolic links to directories, which are shown but not entered.
	descend   bool
	sizeBytes int64
}

// directoryListing holds the kept entries of one directory, each bucket in name order.
type directoryListing struct {
	files       []walkEntry
	directories []walkEntry
}

// readDirectoryListing lists directoryPath and applies policy to every entry.
// Symbolic links are classified by their target. warn receives per-entry stat failures.
func readDirectoryListing(directoryPath string, policy ignore.Policy, warn func(message string, path string, err error)) (directoryListing, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return directoryListing{}, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	var listing directoryListing
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		entry := walkEntry{
			name:         directoryEntry.Name(),
			absolutePath: childPath,
			isDirectory:  directoryEntry.IsDir(),
			descend:      directoryEntry.IsDir(),
		}
		if directoryEntry.Type()&os.ModeSymlink != 0 {
			if targetInfo, statError := os.Stat(childPath); statError == nil && targetInfo.IsDir() {
				entry.isDirectory = true
			}
		}

		if policy.Excludes(childPath, entry.isDirectory) {
			continue
		}

		if entry.isDirectory {
			listing.directories = append(listing.directories, entry)
			continue
		}
		if entryInfo, infoError := os.Stat(childPath); infoError == nil {
			entry.sizeBytes = entryInfo.Size()
		} else if warn != nil {
			warn(warningStatPathMessage, childPath, infoError)
		}
		listing.files = append(listing.files, entry)
	}

	sortEntries(listing.files)
	sortEntries(listing.directories)
	return listing, nil
}

func sortEntries(entries []walkEntry) {
	sort.SliceStable(entries, func(left, right int) bool {
		return entries[left].name < entries[right].name
	})
}
