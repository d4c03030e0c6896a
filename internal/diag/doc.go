// Package diag defines the diagnostic model shared by the analyzers and the
// output layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error, mapped from the validator's message type.
//   - Code: compact numeric identifier (see codes.go) naming which service
//     produced the finding and what kind it is.
//   - Message: the validator's text, kept verbatim apart from whitespace cleanup
//     done at render time.
//   - Primary: the file and optional line/column the validator reported.
//   - Extract: optional markup snippet returned by the HTML checker.
//
// Every diagnostic counts as one toward the process exit status, whatever its
// severity.
//
// # Emitting diagnostics
//
// Analyzers report through a Reporter. BagReporter collects into a Bag; the
// ReportBuilder helpers (ReportError, ReportWarning, ReportInfo) let a producer
// attach an extract before calling Emit.
//
// Package diag does no IO. Rendering lives in internal/diagfmt, with the
// exception of FormatShort, which defines the canonical one-line form the other
// renderers and the tests agree on.
package diag
