package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"w3cv/internal/driver"
	"w3cv/internal/ui"
)

// runWithUI validates files on a worker goroutine while the progress view
// owns out. Quitting the view cancels the run.
func runWithUI(ctx context.Context, files []string, opts driver.Options, out io.Writer) (*driver.Run, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}
	opts.OnResult = nil

	var run *driver.Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		var err error
		run, err = driver.ValidateFiles(gctx, files, opts)
		return err
	})

	model := ui.NewProgressModel("validating", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()

	cancel()
	// воркер не должен застрять на полном канале
	for range events {
	}
	runErr := g.Wait()

	if uiErr != nil {
		return run, fmt.Errorf("progress ui: %w", uiErr)
	}
	return run, runErr
}
