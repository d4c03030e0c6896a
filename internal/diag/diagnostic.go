package diag

import (
	"w3cv/internal/source"
)

// Location points into a loaded file. Line and Column are 1-based; zero
// means the service did not report one.
type Location struct {
	File   source.FileID
	Line   uint32
	Column uint32
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Extract  string
}

func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithExtract(extract string) Diagnostic {
	d.Extract = extract
	return d
}
