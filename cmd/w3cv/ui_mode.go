package main

import (
	"fmt"
	"io"
	"strings"
)

type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

// readSwitchMode parses the value of an auto|on|off flag.
func readSwitchMode(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always", "true":
		return modeOn, nil
	case "off", "never", "false":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabledFor resolves auto against whether w is a terminal.
func (m switchMode) enabledFor(w io.Writer) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(w)
	}
}
