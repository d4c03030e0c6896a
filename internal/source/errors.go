package source

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned by Load for zero-byte files.
	ErrEmpty = errors.New("file is empty")
	// ErrUnsupportedKind is returned by Load for paths KindOf does not recognise.
	ErrUnsupportedKind = errors.New("unsupported file extension")
)

// LoadError describes why a path could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case errors.Is(e.Err, ErrEmpty):
		return fmt.Sprintf("file %s is empty", e.Path)
	case errors.Is(e.Err, ErrUnsupportedKind):
		return fmt.Sprintf("file %s does not have a valid file extension. Only %s are allowed.", e.Path, AllowedExtensions)
	default:
		return e.Err.Error()
	}
}

func (e *LoadError) Unwrap() error { return e.Err }
