package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"w3cv/internal/diag"
)

type palette struct {
	path    *color.Color
	err     *color.Color
	warning *color.Color
	info    *color.Color
	code    *color.Color
	gutter  *color.Color
	ok      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Faint),
		gutter:  color.New(color.FgBlue),
		ok:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warning, p.info, p.code, p.gutter, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warning
	default:
		return p.info
	}
}

type prettyRenderer struct {
	w      Writers
	opts   PrettyOpts
	colors palette
	files  int // файлы с проблемами
}

func newPrettyRenderer(w Writers, opts PrettyOpts) *prettyRenderer {
	return &prettyRenderer{w: w, opts: opts, colors: newPalette(opts.Color)}
}

func (r *prettyRenderer) File(rep FileReport) error {
	if rep.Failure != nil {
		r.files++
		_, err := fmt.Fprintf(r.w.Err, "%s: %s %s\n",
			r.colors.path.Sprint(rep.Path),
			r.colors.err.Sprintf("[%s]", rep.Failure.Kind),
			diag.SanitizeMessage(rep.Failure.Message))
		return err
	}
	if len(rep.Diagnostics) == 0 {
		_, err := fmt.Fprintf(r.w.Out, "%s => %s\n", rep.Path, r.colors.ok.Sprint("OK"))
		return err
	}
	r.files++

	var b strings.Builder
	for _, d := range rep.Diagnostics {
		loc := rep.Path
		if d.Primary.Line > 0 {
			loc = fmt.Sprintf("%s:%d", rep.Path, d.Primary.Line)
		}
		fmt.Fprintf(&b, "%s: %s %s %s\n",
			r.colors.path.Sprint(loc),
			r.colors.severity(d.Severity).Sprint(d.Severity.String()),
			r.colors.code.Sprint(d.Code.ID()),
			diag.SanitizeMessage(d.Message))
		r.writeContext(&b, rep, d)
	}
	_, err := fmt.Fprint(r.w.Err, b.String())
	return err
}

// writeContext prints the offending source line, or the service's extract
// when the line is unknown.
func (r *prettyRenderer) writeContext(b *strings.Builder, rep FileReport, d diag.Diagnostic) {
	if rep.File != nil && d.Primary.Line > 0 && int(d.Primary.Line) <= len(rep.File.LineIdx)+1 {
		line := rep.File.GetLine(d.Primary.Line)
		num := fmt.Sprintf("%d", d.Primary.Line)
		gutter := len(num) + 4 // " N | "
		fmt.Fprintf(b, " %s %s %s\n", r.colors.gutter.Sprint(num), r.colors.gutter.Sprint("|"), r.truncate(expandTabs(line), gutter))
		return
	}
	if extract := diag.SanitizeMessage(d.Extract); extract != "" {
		fmt.Fprintf(b, "   %s %s\n", r.colors.gutter.Sprint("|"), r.truncate(extract, 5))
	}
}

// truncate fits s into what remains of Width after the gutter.
func (r *prettyRenderer) truncate(s string, gutter int) string {
	if r.opts.Width <= 0 {
		return s
	}
	avail := max(r.opts.Width-gutter, 4)
	return runewidth.Truncate(s, avail, "...")
}

func (r *prettyRenderer) Finish(total int) error {
	if total == 0 {
		return nil
	}
	noun := "problems"
	if total == 1 {
		noun = "problem"
	}
	files := "files"
	if r.files == 1 {
		files = "file"
	}
	_, err := fmt.Fprintf(r.w.Err, "%s\n", r.colors.err.Sprintf("%d %s in %d %s", total, noun, r.files, files))
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
