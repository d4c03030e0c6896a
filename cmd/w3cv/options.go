package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"w3cv/internal/version"
	"w3cv/internal/w3c"
)

type options struct {
	format       string
	color        string
	configPath   string
	htmlEndpoint string
	cssEndpoint  string
	timeout      time.Duration
	rate         float64
	cssWarnings  bool
	cssProfile   string
	userAgent    string
	timings      bool
	ui           string
	trace        string
	traceLevel   string
	traceFormat  string
}

func defaultOptions() *options {
	return &options{
		format:       "short",
		color:        "auto",
		htmlEndpoint: w3c.DefaultHTMLEndpoint,
		cssEndpoint:  w3c.DefaultCSSEndpoint,
		userAgent:    version.UserAgent(),
		ui:           "off",
		traceLevel:   "off",
		traceFormat:  "auto",
	}
}

func (o *options) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.format, "format", o.format, "output format (short|pretty|json)")
	f.StringVar(&o.color, "color", o.color, "colorize pretty output (auto|on|off)")
	f.StringVar(&o.configPath, "config", "", "config file (default: nearest .w3cv.toml)")
	f.StringVar(&o.htmlEndpoint, "html-endpoint", o.htmlEndpoint, "Nu HTML checker endpoint")
	f.StringVar(&o.cssEndpoint, "css-endpoint", o.cssEndpoint, "CSS validator endpoint")
	f.DurationVar(&o.timeout, "timeout", 0, "per-request timeout (0 = none)")
	f.Float64Var(&o.rate, "rate", 0, "maximum requests per second (0 = unpaced)")
	f.BoolVar(&o.cssWarnings, "css-warnings", false, "report CSS validator warnings as problems")
	f.StringVar(&o.cssProfile, "css-profile", "", "CSS profile sent to the validator (e.g. css3svg)")
	f.StringVar(&o.userAgent, "user-agent", o.userAgent, "User-Agent header of requests")
	f.BoolVar(&o.timings, "timings", false, "print per-file request timings to stderr")
	f.StringVar(&o.ui, "ui", o.ui, "progress UI (auto|on|off)")
	f.StringVar(&o.trace, "trace", "", "trace output file (- for stderr)")
	f.StringVar(&o.traceLevel, "trace-level", o.traceLevel, "trace level (off|error|phase|detail|debug)")
	f.StringVar(&o.traceFormat, "trace-format", o.traceFormat, "trace format (auto|text|ndjson)")
}

// resolve merges the config file under the explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		found, ok, err := findConfig(wd)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		path = found
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	return cfg.apply(o, cmd.Flags().Changed)
}

func (o *options) clientOptions() []w3c.ClientOption {
	opts := []w3c.ClientOption{
		w3c.WithHTMLEndpoint(o.htmlEndpoint),
		w3c.WithCSSEndpoint(o.cssEndpoint),
		w3c.WithUserAgent(o.userAgent),
		w3c.WithRateLimit(o.rate),
	}
	if o.cssProfile != "" {
		opts = append(opts, w3c.WithCSSProfile(o.cssProfile))
	}
	if o.timeout > 0 {
		opts = append(opts, w3c.WithTimeout(o.timeout))
	}
	return opts
}
