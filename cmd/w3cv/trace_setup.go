package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"w3cv/internal/trace"
)

// setupTracing initializes the tracer from the trace flags and attaches it to
// the command context. It returns a cleanup function that flushes and closes
// the tracer.
func setupTracing(cmd *cobra.Command, opts *options) (func(), error) {
	level, err := trace.ParseLevel(opts.traceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	// --trace без уровня включает фазы
	if level == trace.LevelOff && opts.trace != "" && !cmd.Flags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(opts.traceFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	cfg := trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: opts.trace,
	}
	if opts.trace == "-" || opts.trace == "" {
		cfg.Output = writerOnly{cmd.ErrOrStderr()}
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// writerOnly hides Close so that closing the tracer leaves stderr open.
type writerOnly struct{ io.Writer }
