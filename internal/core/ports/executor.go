// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/cathywu/sumosims/internal/core/domain"
)

// Executor defines the interface for running a target's action.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute evaluates the action's guard, selects the command, and runs
	// it as a subprocess, waiting for completion. Subprocess output is
	// streamed to stdout and stderr in addition to the executor's logger.
	//
	// It returns ErrActionFailed with exit code metadata if the subprocess
	// exits non-zero. The target's output files are not verified after a
	// successful run.
	Execute(ctx context.Context, target *domain.Target, stdout, stderr io.Writer) error
}
