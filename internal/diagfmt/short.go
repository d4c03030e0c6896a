package diagfmt

import (
	"fmt"

	"w3cv/internal/diag"
)

type shortRenderer struct {
	w Writers
}

func (r shortRenderer) File(rep FileReport) error {
	switch {
	case rep.Failure != nil:
		_, err := fmt.Fprintf(r.w.Err, "[%s] %s\n", rep.Failure.Kind, diag.SanitizeMessage(rep.Failure.Message))
		return err
	case len(rep.Diagnostics) == 0:
		_, err := fmt.Fprintf(r.w.Out, "%s => OK\n", rep.Path)
		return err
	default:
		_, err := fmt.Fprintln(r.w.Err, diag.FormatShortDiagnostics(rep.Path, rep.Diagnostics))
		return err
	}
}

func (shortRenderer) Finish(int) error { return nil }
