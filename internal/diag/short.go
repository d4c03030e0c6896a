package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders d as the canonical single line
//
//	[path:line] message
//
// or "[path] message" when the code is not located or the line is unknown.
// The message is flattened to one line so that one diagnostic is always one
// output line.
func FormatShort(path string, d Diagnostic) string {
	msg := SanitizeMessage(d.Message)
	if d.Code.Located() && d.Primary.Line > 0 {
		return fmt.Sprintf("[%s:%d] %s", path, d.Primary.Line, msg)
	}
	return fmt.Sprintf("[%s] %s", path, msg)
}

// FormatShortDiagnostics renders every diagnostic of a file, one per line,
// in reporting order. The result has no trailing newline.
func FormatShortDiagnostics(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		b.WriteString(FormatShort(path, d))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SanitizeMessage joins multi-line messages and trims surrounding space.
func SanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
