package driver

import (
	"context"
	"errors"
	"fmt"

	"w3cv/internal/source"
	"w3cv/internal/w3c"
)

// FailureKind names the class of a per-file failure. It is printed in
// brackets in front of the failure message.
type FailureKind string

const (
	KindIO                   FailureKind = "IOError"
	KindUnsupportedExtension FailureKind = "UnsupportedExtension"
	KindNetwork              FailureKind = "NetworkError"
	KindResponse             FailureKind = "ResponseError"
	KindDecode               FailureKind = "DecodeError"
)

// FileError is the failure that prevented a file from being analysed.
type FileError struct {
	Path string
	Kind FailureKind
	Err  error
}

func (e *FileError) Error() string {
	return e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

// classify maps an error from loading or checking path to a FileError.
func classify(path string, err error) *FileError {
	var (
		fe        *FileError
		loadErr   *source.LoadError
		transport *w3c.TransportError
		status    *w3c.StatusError
		decode    *w3c.DecodeError
	)
	kind := KindNetwork
	switch {
	case errors.As(err, &fe):
		return fe
	case errors.As(err, &loadErr):
		kind = KindIO
		if errors.Is(err, source.ErrUnsupportedKind) {
			kind = KindUnsupportedExtension
		}
	case errors.As(err, &transport):
		kind = KindNetwork
	case errors.As(err, &status):
		kind = KindResponse
	case errors.As(err, &decode):
		kind = KindDecode
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = KindNetwork
	default:
		err = fmt.Errorf("%s: %w", path, err)
	}
	return &FileError{Path: path, Kind: kind, Err: err}
}
