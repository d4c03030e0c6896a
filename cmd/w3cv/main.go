package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"w3cv/internal/version"
)

const usageLine = "usage: w3cv file1 file2 ..."

// exitStatusInterrupted is what shells report for a SIGINT-terminated job.
const exitStatusInterrupted = 130

// exitError carries a process exit status out of RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "w3cv [flags] file1 file2 ...",
		Short: "Validate HTML and CSS files with the W3C validators",
		Long: `w3cv sends every file to the W3C Nu HTML checker (.html, .htm, .svg)
or the Jigsaw CSS validator (.css) and prints one line per problem.
The exit status is the number of problems found.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}
	cmd.Version = version.Version
	cmd.SetVersionTemplate(versionTemplate())
	opts.register(cmd)
	return cmd
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "w3cv: %v\n", err)
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// clampExitStatus maps a problem count to a status a POSIX process can report.
func clampExitStatus(total int) int {
	switch {
	case total < 0:
		return 0
	case total > 255:
		return 255
	default:
		return total
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	f, _ := w.(*os.File)
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
