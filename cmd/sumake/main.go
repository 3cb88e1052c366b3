// Package main is the entry point for the sumake CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/joho/godotenv"
	"go.trai.ch/zerr"

	"github.com/cathywu/sumosims/cmd/sumake/commands"
	"github.com/cathywu/sumosims/internal/app"
	"github.com/cathywu/sumosims/internal/core/domain"
	_ "github.com/cathywu/sumosims/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A .env next to the manifest carries toolchain settings such as
	// SUMO_HOME; missing files are fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.App.Close() //nolint:errcheck // best effort flush on exit

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildFailed) {
			// The failing subprocess already wrote its diagnostics;
			// propagate its exit code.
			return exitCode(err)
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// exitCode returns the exit code recorded on the failing action, falling
// back to 1 when none was recorded or the subprocess died on a signal.
func exitCode(err error) int {
	if code, ok := recordedExitCode(err); ok && code > 0 {
		return code
	}
	return 1
}

// recordedExitCode walks the error chain, including joined errors, looking
// for the exit_code metadata the executor attaches to action failures.
func recordedExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	if zErr, ok := err.(*zerr.Error); ok {
		if code, ok := zErr.Metadata()["exit_code"].(int); ok {
			return code, true
		}
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, joined := range u.Unwrap() {
			if code, ok := recordedExitCode(joined); ok {
				return code, true
			}
		}
	case interface{ Unwrap() error }:
		return recordedExitCode(u.Unwrap())
	}
	return 0, false
}
