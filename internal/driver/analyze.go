package driver

import (
	"context"

	"fortio.org/safecast"

	"w3cv/internal/diag"
	"w3cv/internal/source"
	"w3cv/internal/w3c"
)

// Checker is the part of *w3c.Client the analyzers need.
type Checker interface {
	CheckHTML(ctx context.Context, name string, content []byte) (*w3c.HTMLResponse, error)
	CheckCSS(ctx context.Context, name string, content []byte) (*w3c.CSSResponse, error)
}

// analyze dispatches f to the analyzer for its kind and reports every
// message to r.
func analyze(ctx context.Context, checker Checker, f *source.File, r diag.Reporter, opts Options) error {
	switch f.Kind {
	case source.KindHTML:
		return analyzeHTML(ctx, checker, f, r)
	case source.KindCSS:
		return analyzeCSS(ctx, checker, f, r, opts.CSSWarnings)
	default:
		return &source.LoadError{Path: f.Path, Err: source.ErrUnsupportedKind}
	}
}

func analyzeHTML(ctx context.Context, checker Checker, f *source.File, r diag.Reporter) error {
	resp, err := checker.CheckHTML(ctx, f.Path, f.Content)
	if err != nil {
		return err
	}
	for _, m := range resp.Messages {
		loc := diag.Location{
			File:   f.ID,
			Line:   toPos(m.LastLine),
			Column: toPos(m.FirstColumn),
		}
		var b *diag.ReportBuilder
		switch {
		case m.Type == w3c.HTMLTypeError:
			b = diag.ReportError(r, diag.HTMLError, loc, m.Message)
		case m.Type == w3c.HTMLTypeInfo && m.SubType == w3c.HTMLSubTypeWarning:
			b = diag.ReportWarning(r, diag.HTMLWarning, loc, m.Message)
		case m.Type == w3c.HTMLTypeInfo:
			b = diag.ReportInfo(r, diag.HTMLInfo, loc, m.Message)
		default:
			// non-document-error и всё, что checker добавит в будущем
			b = diag.ReportError(r, diag.HTMLNonDocument, loc, m.Message)
		}
		b.WithExtract(m.Extract).Emit()
	}
	return nil
}

func analyzeCSS(ctx context.Context, checker Checker, f *source.File, r diag.Reporter, withWarnings bool) error {
	resp, err := checker.CheckCSS(ctx, f.Path, f.Content)
	if err != nil {
		return err
	}
	for _, e := range resp.CSSValidation.Errors {
		diag.ReportError(r, diag.CSSError, diag.Location{File: f.ID, Line: toPos(e.Line)}, e.Message).
			WithExtract(e.Context).
			Emit()
	}
	if withWarnings {
		for _, w := range resp.CSSValidation.Warnings {
			diag.ReportWarning(r, diag.CSSWarning, diag.Location{File: f.ID, Line: toPos(w.Line)}, w.Message).
				WithExtract(w.Context).
				Emit()
		}
	}
	return nil
}

// toPos converts a 1-based position from a response; anything that does not
// fit (absent, negative) becomes 0, "unknown".
func toPos(n int) uint32 {
	if n <= 0 {
		return 0
	}
	p, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return p
}
