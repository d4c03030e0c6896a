package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"w3cv/internal/diagfmt"
	"w3cv/internal/driver"
	"w3cv/internal/observ"
	"w3cv/internal/w3c"
)

func runValidate(cmd *cobra.Command, opts *options, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if len(args) == 0 {
		fmt.Fprintln(stderr, usageLine)
		return &exitError{code: 1}
	}

	if err := opts.resolve(cmd); err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	colorMode, err := readSwitchMode("color", opts.color)
	if err != nil {
		return err
	}
	uiMode, err := readSwitchMode("ui", opts.ui)
	if err != nil {
		return err
	}
	if opts.timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	if opts.rate < 0 {
		return fmt.Errorf("--rate must not be negative")
	}

	cleanup, err := setupTracing(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()

	renderer := diagfmt.New(format, diagfmt.Writers{Out: stdout, Err: stderr}, diagfmt.Options{
		Pretty: diagfmt.PrettyOpts{Color: colorMode.enabledFor(stderr), Width: terminalWidth(stderr)},
		JSON:   diagfmt.JSONOpts{Indent: true, WithElapsed: opts.timings, WithExtracts: true},
	})

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}
	dopts := driver.Options{
		Checker:     w3c.NewClient(opts.clientOptions()...),
		CSSWarnings: opts.cssWarnings,
		Timer:       timer,
	}

	var renderErr error
	render := func(res *driver.Result) {
		if err := renderer.File(reportFor(res)); err != nil && renderErr == nil {
			renderErr = err
		}
	}

	var (
		run    *driver.Run
		runErr error
	)
	if uiMode.enabledFor(stderr) {
		run, runErr = runWithUI(ctx, args, dopts, stderr)
		if run != nil {
			for _, res := range run.Results {
				render(res)
			}
		}
	} else {
		dopts.OnResult = render
		run, runErr = driver.ValidateFiles(ctx, args, dopts)
	}

	total := 0
	if run != nil {
		total = run.Total()
	}
	if err := renderer.Finish(total); err != nil && renderErr == nil {
		renderErr = err
	}
	printTimings(stderr, timer)

	if errors.Is(runErr, context.Canceled) {
		done := 0
		if run != nil {
			done = len(run.Results)
		}
		fmt.Fprintf(stderr, "interrupted after %d of %d files\n", done, len(args))
		return &exitError{code: exitStatusInterrupted}
	}
	if runErr != nil {
		return runErr
	}
	if renderErr != nil {
		return fmt.Errorf("failed to write output: %w", renderErr)
	}
	if code := clampExitStatus(total); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// reportFor converts a driver result into what the renderers consume.
func reportFor(res *driver.Result) diagfmt.FileReport {
	rep := diagfmt.FileReport{
		Path:    res.Path,
		File:    res.File,
		Elapsed: res.Elapsed,
	}
	if res.Err != nil {
		rep.Failure = &diagfmt.Failure{Kind: string(res.Err.Kind), Message: res.Err.Error()}
		return rep
	}
	rep.Diagnostics = res.Bag.Items()
	return rep
}
