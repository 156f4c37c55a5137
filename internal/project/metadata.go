// Package project collects the metadata written at the top of a generated document.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/mod/modfile"

	"github.com/temirov/mapdoc/internal/types"
	"github.com/temirov/mapdoc/internal/utils"
)

const goModFileName = "go.mod"

var (
	// ErrRootMissing reports a project root that does not exist.
	ErrRootMissing = errors.New("project root does not exist")
	// ErrRootNotDirectory reports a project root that is not a directory.
	ErrRootNotDirectory = errors.New("project root is not a directory")
)

// readmeCandidates lists README names in lookup order.
var readmeCandidates = []string{"README.md", "README.txt", "Readme.md", "readme.md"}

// ResolveRoot converts inputPath to a clean absolute path and verifies it is a directory.
func ResolveRoot(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absoluteError := filepath.Abs(inputPath)
	if absoluteError != nil {
		return types.ValidatedPath{}, fmt.Errorf("abs failed for '%s': %w", inputPath, absoluteError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.ValidatedPath{}, fmt.Errorf("%w: %s", ErrRootMissing, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf("stat failed for '%s': %w", inputPath, statError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf("%w: %s", ErrRootNotDirectory, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

// Describe builds the project info block for root as of generatedAt.
// Go module details are attached when root holds a parseable go.mod.
func Describe(root string, generatedAt time.Time) types.ProjectInfo {
	info := types.ProjectInfo{
		Name:          filepath.Base(root),
		AbsolutePath:  root,
		GeneratedDate: utils.FormatDocumentDate(generatedAt),
	}
	if moduleInfo, moduleError := LoadModuleInfo(root); moduleError == nil {
		info.Module = moduleInfo
	}
	return info
}

// LoadModuleInfo parses root/go.mod. It returns nil without error when the file is absent.
//
// #nosec G304
func LoadModuleInfo(root string) (*types.ModuleInfo, error) {
	goModPath := filepath.Join(root, goModFileName)
	content, readError := os.ReadFile(goModPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", goModFileName, readError)
	}
	parsedFile, parseError := modfile.ParseLax(goModPath, content, nil)
	if parseError != nil {
		return nil, fmt.Errorf("parse %s: %w", goModFileName, parseError)
	}
	if parsedFile == nil || parsedFile.Module == nil {
		return nil, nil
	}
	moduleInfo := &types.ModuleInfo{
		Path:     parsedFile.Module.Mod.Path,
		Requires: len(parsedFile.Require),
	}
	if parsedFile.Go != nil {
		moduleInfo.GoVersion = parsedFile.Go.Version
	}
	return moduleInfo, nil
}

// FindReadme returns the first existing README candidate in root.
func FindReadme(root string) (string, bool) {
	for _, candidate := range readmeCandidates {
		candidatePath := filepath.Join(root, candidate)
		if _, statError := os.Stat(candidatePath); statError == nil {
			return candidatePath, true
		}
	}
	return "", false
}
