package diagfmt

import (
	"encoding/json"

	"w3cv/internal/diag"
	"w3cv/internal/observ"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Line     uint32 `json:"line,omitempty"`
	Column   uint32 `json:"column,omitempty"`
	Extract  string `json:"extract,omitempty"`
}

// FailureJSON is the failure of a file.
type FailureJSON struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FileJSON is one entry of the files array.
type FileJSON struct {
	Path        string           `json:"path"`
	OK          bool             `json:"ok"`
	Failure     *FailureJSON     `json:"failure,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	ElapsedMS   float64          `json:"elapsed_ms,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []FileJSON `json:"files"`
	Total int        `json:"total"`
}

// BuildFileJSON converts rep without serializing it.
func BuildFileJSON(rep FileReport, opts JSONOpts) FileJSON {
	out := FileJSON{
		Path:        rep.Path,
		OK:          rep.OK(),
		Diagnostics: make([]DiagnosticJSON, 0, len(rep.Diagnostics)),
		Count:       rep.Count(),
	}
	if rep.Failure != nil {
		out.Failure = &FailureJSON{Kind: rep.Failure.Kind, Message: diag.SanitizeMessage(rep.Failure.Message)}
	}
	for _, d := range rep.Diagnostics {
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Message:  diag.SanitizeMessage(d.Message),
			Line:     d.Primary.Line,
			Column:   d.Primary.Column,
		}
		if opts.WithExtracts {
			dj.Extract = d.Extract
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	if opts.WithElapsed {
		out.ElapsedMS = observ.DurationToMillis(rep.Elapsed)
	}
	return out
}

type jsonRenderer struct {
	w    Writers
	opts JSONOpts
	doc  DiagnosticsOutput
}

func newJSONRenderer(w Writers, opts JSONOpts) *jsonRenderer {
	return &jsonRenderer{w: w, opts: opts, doc: DiagnosticsOutput{Files: []FileJSON{}}}
}

func (r *jsonRenderer) File(rep FileReport) error {
	r.doc.Files = append(r.doc.Files, BuildFileJSON(rep, r.opts))
	return nil
}

// Finish writes the whole document to Out.
func (r *jsonRenderer) Finish(total int) error {
	r.doc.Total = total
	encoder := json.NewEncoder(r.w.Out)
	if r.opts.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(r.doc)
}
