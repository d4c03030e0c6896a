package main

import (
	"strings"

	"w3cv/internal/version"
)

func versionTemplate() string {
	var b strings.Builder
	b.WriteString("w3cv ")
	b.WriteString(version.Colored())
	b.WriteString("\n")
	if commit := strings.TrimSpace(version.GitCommit); commit != "" {
		b.WriteString("commit: " + commit + "\n")
	}
	if date := strings.TrimSpace(version.BuildDate); date != "" {
		b.WriteString("built:  " + date + "\n")
	}
	return b.String()
}
