// Package ports defines interfaces for external collaborators.
// The glossary core depends on these abstractions; adapters implement them.
package ports

import (
	"context"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// GlossaryReader parses a backing file into a Document.
type GlossaryReader interface {
	// Load reads the glossary stored at path. Failures match
	// entities.ErrLoadFailure; a missing file also unwraps to os.ErrNotExist.
	Load(ctx context.Context, path string) (*entities.Document, error)
}

// GlossaryWriter serializes a Document to its backing file.
type GlossaryWriter interface {
	// Save overwrites path with doc. Failures match entities.ErrWriteFailure.
	Save(ctx context.Context, path string, doc *entities.Document) error
}

// Codec is a reader and writer for one storage format.
type Codec interface {
	GlossaryReader
	GlossaryWriter

	// SupportedExtensions returns file extensions this codec handles.
	SupportedExtensions() []string
}

// FileWatcher monitors a glossary file for changes made outside the process.
type FileWatcher interface {
	// Watch starts monitoring path and emits events.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
