package version

import "github.com/fatih/color"

// Version information for the w3cv CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionRestColor  = color.New(color.FgGreen)
)

// Colored returns Version with the major component highlighted. fatih/color
// drops the escapes when stdout is not a terminal.
func Colored() string {
	v := Version
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			return versionMajorColor.Sprint(v[:i]) + versionRestColor.Sprint(v[i:])
		}
	}
	return versionMajorColor.Sprint(v)
}

// UserAgent is the default User-Agent sent to the validation services.
func UserAgent() string {
	return "w3cv/" + Version
}
