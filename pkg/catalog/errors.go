package catalog

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the requested source format is not known.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// LoadError represents an error while loading a catalog source.
type LoadError struct {
	Format Format
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s catalog: %v", e.Format, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(format Format, err error) *LoadError {
	return &LoadError{Format: format, Err: err}
}
