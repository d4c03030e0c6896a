package source

import "strings"

// AllowedExtensions is the list shown to users when a path is rejected.
const AllowedExtensions = "'.css', '.html', '.htm' and '.svg'"

// KindOf selects an analyzer by suffix. Anything ending in "html" is treated as
// HTML, so ".xhtml" and ".shtml" go to the HTML checker as well.
func KindOf(path string) Kind {
	switch {
	case strings.HasSuffix(path, ".css"):
		return KindCSS
	case strings.HasSuffix(path, "html"),
		strings.HasSuffix(path, ".htm"),
		strings.HasSuffix(path, ".svg"):
		return KindHTML
	default:
		return KindUnknown
	}
}
