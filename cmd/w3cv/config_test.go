package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "site", "pages")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeFile(t, root, configFileName, "")

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfigAppliesUnderChangedFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), configFileName, `
[html]
endpoint = "http://mirror.local/nu/?out=json"
[css]
profile = "css3svg"
warnings = true
[http]
timeout = "15s"
rate = 2.5
user_agent = "site-ci"
[output]
format = "pretty"
color = "off"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions()
	opts.format = "json"
	changed := func(flag string) bool { return flag == "format" }
	if err := cfg.apply(opts, changed); err != nil {
		t.Fatal(err)
	}

	if opts.htmlEndpoint != "http://mirror.local/nu/?out=json" {
		t.Errorf("html endpoint: %q", opts.htmlEndpoint)
	}
	if opts.cssEndpoint != defaultOptions().cssEndpoint {
		t.Errorf("css endpoint should keep its default, got %q", opts.cssEndpoint)
	}
	if opts.cssProfile != "css3svg" || !opts.cssWarnings {
		t.Errorf("css: profile=%q warnings=%v", opts.cssProfile, opts.cssWarnings)
	}
	if opts.timeout != 15*time.Second || opts.rate != 2.5 || opts.userAgent != "site-ci" {
		t.Errorf("http: timeout=%v rate=%v ua=%q", opts.timeout, opts.rate, opts.userAgent)
	}
	if opts.format != "json" {
		t.Errorf("explicit --format overridden by config: %q", opts.format)
	}
	if opts.color != "off" {
		t.Errorf("color: %q", opts.color)
	}
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), configFileName, "[html]\nendpiont = \"x\"\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "html.endpiont") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestConfigRejectsBadTimeout(t *testing.T) {
	path := writeFile(t, t.TempDir(), configFileName, "[http]\ntimeout = \"soon\"\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.apply(defaultOptions(), func(string) bool { return false }); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestConfigFormatUsedByRun(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.html", "<p>")
	htmlURL, cssURL := validators(t, nil, nil)
	cfg := writeFile(t, t.TempDir(), configFileName, "[output]\nformat = \"json\"\n[html]\nendpoint = \""+htmlURL+"\"\n")

	code, out, _ := runCLI(t, "--config", cfg, "--css-endpoint", cssURL, p)
	if code != 0 || !strings.Contains(out, `"total": 0`) {
		t.Errorf("code=%d out=%q", code, out)
	}
}

func TestMissingConfigIsAnError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.html", "<p>")
	code, _, errOut := runCLI(t, "--config", filepath.Join(dir, "nope.toml"), p)
	if code != 1 || !strings.Contains(errOut, "nope.toml") {
		t.Errorf("code=%d stderr=%q", code, errOut)
	}
}

func TestClampExitStatus(t *testing.T) {
	for in, want := range map[int]int{-3: 0, 0: 0, 7: 7, 255: 255, 256: 255, 10000: 255} {
		if got := clampExitStatus(in); got != want {
			t.Errorf("clampExitStatus(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestReadSwitchMode(t *testing.T) {
	for in, want := range map[string]switchMode{"": modeAuto, "AUTO": modeAuto, "on": modeOn, "off": modeOff, "never": modeOff} {
		got, err := readSwitchMode("ui", in)
		if err != nil || got != want {
			t.Errorf("readSwitchMode(%q) = %q, %v", in, got, err)
		}
	}
	if modeOn.enabledFor(nil) != true || modeOff.enabledFor(nil) != false || modeAuto.enabledFor(&strings.Builder{}) {
		t.Error("enabledFor mismatch")
	}
}

func TestTerminalWidthOfNonTerminal(t *testing.T) {
	if got := terminalWidth(&strings.Builder{}); got != 0 {
		t.Errorf("terminalWidth(builder) = %d, want 0", got)
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := terminalWidth(f); got != 0 {
		t.Errorf("terminalWidth(file) = %d, want 0", got)
	}
}
