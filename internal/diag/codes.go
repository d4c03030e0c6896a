package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Nu HTML checker
	HTMLError       Code = 1001
	HTMLWarning     Code = 1002 // type "info", subType "warning"
	HTMLInfo        Code = 1003
	HTMLNonDocument Code = 1004 // "non-document-error": the checker could not process the input

	// Jigsaw CSS validator
	CSSError   Code = 2001
	CSSWarning Code = 2002
)

var codeDescription = map[Code]string{
	UnknownCode:     "Unknown diagnostic",
	HTMLError:       "HTML error",
	HTMLWarning:     "HTML warning",
	HTMLInfo:        "HTML info",
	HTMLNonDocument: "HTML checker could not process the document",
	CSSError:        "CSS error",
	CSSWarning:      "CSS warning",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("HTML%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CSS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Located reports whether the one-line form of a diagnostic with this code
// carries a line number. The HTML checker's errors and infos are shown
// without one; everything else shows the line when it is known.
func (c Code) Located() bool {
	switch c {
	case HTMLError, HTMLWarning, HTMLInfo:
		return false
	}
	return true
}
