package entities

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds surfaced by the glossary. Test with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrWriteFailure    = errors.New("write failure")
	ErrLoadFailure     = errors.New("load failure")
)

// NewNotFound reports a missing keyword or list item.
func NewNotFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// NewInvalidArgument reports a malformed call.
func NewInvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// WriteError is returned when persisting a glossary fails.
// It matches ErrWriteFailure and unwraps to the underlying cause.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWriteFailure }

// LoadError is returned when a glossary file cannot be read or is not a
// glossary. It matches ErrLoadFailure and unwraps to the underlying cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }
