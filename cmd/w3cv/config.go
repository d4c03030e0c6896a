package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = ".w3cv.toml"

type fileConfig struct {
	HTML   htmlConfig   `toml:"html"`
	CSS    cssConfig    `toml:"css"`
	HTTP   httpConfig   `toml:"http"`
	Output outputConfig `toml:"output"`

	path string
	meta toml.MetaData
}

type htmlConfig struct {
	Endpoint string `toml:"endpoint"`
}

type cssConfig struct {
	Endpoint string `toml:"endpoint"`
	Profile  string `toml:"profile"`
	Warnings bool   `toml:"warnings"`
}

type httpConfig struct {
	Timeout   string  `toml:"timeout"`
	Rate      float64 `toml:"rate"`
	UserAgent string  `toml:"user_agent"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// findConfig walks up from startDir looking for .w3cv.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (*fileConfig, error) {
	// #nosec G304 -- path comes from --config or the directory walk
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := &fileConfig{path: path}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.meta = meta
	return cfg, nil
}

// apply copies every value defined in the file into o, except for flags
// the user set explicitly.
func (c *fileConfig) apply(o *options, changed func(flag string) bool) error {
	take := func(flag string, key ...string) bool {
		return c.meta.IsDefined(key...) && !changed(flag)
	}

	if take("html-endpoint", "html", "endpoint") {
		o.htmlEndpoint = c.HTML.Endpoint
	}
	if take("css-endpoint", "css", "endpoint") {
		o.cssEndpoint = c.CSS.Endpoint
	}
	if take("css-profile", "css", "profile") {
		o.cssProfile = c.CSS.Profile
	}
	if take("css-warnings", "css", "warnings") {
		o.cssWarnings = c.CSS.Warnings
	}
	if take("timeout", "http", "timeout") {
		d, err := time.ParseDuration(c.HTTP.Timeout)
		if err != nil {
			return fmt.Errorf("%s: http.timeout: %w", c.path, err)
		}
		if d < 0 {
			return fmt.Errorf("%s: http.timeout must not be negative", c.path)
		}
		o.timeout = d
	}
	if take("rate", "http", "rate") {
		if c.HTTP.Rate < 0 {
			return fmt.Errorf("%s: http.rate must not be negative", c.path)
		}
		o.rate = c.HTTP.Rate
	}
	if take("user-agent", "http", "user_agent") {
		o.userAgent = c.HTTP.UserAgent
	}
	if take("format", "output", "format") {
		o.format = c.Output.Format
	}
	if take("color", "output", "color") {
		o.color = c.Output.Color
	}
	return nil
}
