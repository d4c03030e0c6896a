package diagfmt

import (
	"io"
	"time"

	"w3cv/internal/diag"
	"w3cv/internal/source"
)

// Failure is a per-file error that prevented analysis.
type Failure struct {
	Kind    string
	Message string
}

// FileReport is everything a renderer needs about one validated path.
type FileReport struct {
	Path        string
	File        *source.File // nil when the file could not be loaded
	Diagnostics []diag.Diagnostic
	Failure     *Failure
	Elapsed     time.Duration
}

// Count is the contribution of the report to the exit status.
func (r FileReport) Count() int {
	if r.Failure != nil {
		return 1
	}
	return len(r.Diagnostics)
}

// OK reports whether the file validated cleanly.
func (r FileReport) OK() bool {
	return r.Failure == nil && len(r.Diagnostics) == 0
}

// Writers are the two output streams. Out receives success notices and
// JSON documents, Err receives diagnostics and failures.
type Writers struct {
	Out io.Writer
	Err io.Writer
}

// Renderer writes reports as they arrive. Finish is called once after the
// last file with the run total.
type Renderer interface {
	File(rep FileReport) error
	Finish(total int) error
}

// New returns the renderer for format.
func New(format Format, w Writers, opts Options) Renderer {
	switch format {
	case FormatPretty:
		return newPrettyRenderer(w, opts.Pretty)
	case FormatJSON:
		return newJSONRenderer(w, opts.JSON)
	default:
		return shortRenderer{w: w}
	}
}
