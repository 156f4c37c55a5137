// Package clipboard copies generated documents to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

const errorReadDocumentFormat = "read document %s: %w"

// ErrNilCopier is returned when no Copier is supplied.
var ErrNilCopier = errors.New("nil clipboard copier")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyDocument reads the document at documentPath and hands it to copier.
//
// #nosec G304
func CopyDocument(copier Copier, documentPath string) error {
	if copier == nil {
		return ErrNilCopier
	}
	content, readError := os.ReadFile(documentPath)
	if readError != nil {
		return fmt.Errorf(errorReadDocumentFormat, documentPath, readError)
	}
	return copier.Copy(string(content))
}

var _ Copier = (*Service)(nil)
