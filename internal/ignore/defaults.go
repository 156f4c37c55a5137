package ignore

import (
	"strings"

	"github.com/temirov/mapdoc/internal/utils"
)

// Denylists hold exact directory basenames and file suffixes that are always excluded.
type Denylists struct {
	Directories []string
	Extensions  []string
}

// DefaultDenylists returns a fresh copy of the built-in exclusions: version
// control, caches, dependency and IDE directories, and compiled artifacts.
func DefaultDenylists() Denylists {
	return Denylists{
		Directories: []string{utils.GitDirectoryName, "__pycache__", "node_modules", "venv", ".idea", ".vscode"},
		Extensions:  []string{".pyc", ".pyo", ".pyd", ".so", ".dll", ".exe", ".obj", ".class"},
	}
}

// WithAdditions returns a copy of the denylists extended with extra directory
// names and suffixes. Duplicates and blank values are skipped.
func (denylists Denylists) WithAdditions(directories []string, extensions []string) Denylists {
	return Denylists{
		Directories: utils.MergeUnique(denylists.Directories, directories),
		Extensions:  utils.MergeUnique(denylists.Extensions, extensions),
	}
}

// ExcludesDirectory reports whether name exactly equals a denied directory name.
func (denylists Denylists) ExcludesDirectory(name string) bool {
	return utils.ContainsString(denylists.Directories, name)
}

// ExcludesFile reports whether name ends with a denied suffix.
func (denylists Denylists) ExcludesFile(name string) bool {
	for _, extension := range denylists.Extensions {
		if extension != "" && strings.HasSuffix(name, extension) {
			return true
		}
	}
	return false
}
