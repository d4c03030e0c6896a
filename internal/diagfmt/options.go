package diagfmt

import "fmt"

// Format selects a renderer.
type Format string

const (
	FormatShort  Format = "short"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatShort, FormatPretty, FormatJSON:
		return f, nil
	case "":
		return FormatShort, nil
	}
	return "", fmt.Errorf("unknown format %q (want short, pretty or json)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	Width int // ширина терминала для строк контекста, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Indent       bool
	WithElapsed  bool // добавить elapsed_ms для каждого файла
	WithExtracts bool
}

// Options bundles the per-format options for New.
type Options struct {
	Pretty PrettyOpts
	JSON   JSONOpts
}
