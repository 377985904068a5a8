// Command todoe2e runs the TodoMVC scenario suites in a real browser.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/thesyncim/todomvc-e2e/internal/exitcode"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version))
	stop()
	os.Exit(codeOf(err))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todoe2e",
		Short: "End-to-end scenario suites for TodoMVC",
		Long: `todoe2e drives a TodoMVC application through a real browser and reports
a pass, fail or skip outcome for every scenario.

Configuration comes from flags, TODOE2E_* environment variables and a
todoe2e.yml file in the working directory, in that order of precedence.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitCmd())
	return root
}

// exitError carries the process exit status for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// codeOf maps err to an exit status. Errors without an explicit code come
// from flag parsing or argument validation.
func codeOf(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitcode.ConfigError
}
