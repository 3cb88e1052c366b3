package main

import (
	"errors"
	"os"
	"testing"

	"go.trai.ch/zerr"

	"github.com/cathywu/sumosims/internal/core/domain"
)

func TestExitCode(t *testing.T) {
	failure := domain.Annotate(domain.ErrActionFailed, "target", "net")
	failure = zerr.With(failure, "exit_code", 2)
	wrapped := zerr.With(zerr.Wrap(failure, "target execution failed"), "target", "net")
	joined := errors.Join(domain.ErrBuildFailed, wrapped)

	if got := exitCode(joined); got != 2 {
		t.Errorf("expected recorded exit code 2, got %d", got)
	}

	if got := exitCode(domain.ErrBuildFailed); got != 1 {
		t.Errorf("expected fallback exit code 1, got %d", got)
	}

	// A signal death records -1, which is not a valid exit code.
	signalled := zerr.With(domain.Annotate(domain.ErrActionFailed, "target", "net"), "exit_code", -1)
	if got := exitCode(signalled); got != 1 {
		t.Errorf("expected fallback exit code 1 for signal death, got %d", got)
	}
}

func TestRun(t *testing.T) {
	originalWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(originalWD); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	}()

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change into temp directory: %v", err)
	}

	manifest := `version: "1"
targets:
  hello:
    phony: true
    cmd: [echo, hello]
  boom:
    phony: true
    cmd: [sh, -c, "exit 3"]
`
	if err := os.WriteFile("sumake.yaml", []byte(manifest), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "run phony target",
			args:         []string{"run", "hello"},
			expectedExit: 0,
		},
		{
			name:         "run without targets shows help",
			args:         []string{"run"},
			expectedExit: 0,
		},
		{
			name:         "unknown target fails",
			args:         []string{"run", "nope"},
			expectedExit: 1,
		},
		{
			name:         "failing action propagates its exit code",
			args:         []string{"run", "boom"},
			expectedExit: 3,
		},
		{
			name:         "version",
			args:         []string{"version"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.expectedExit {
				t.Errorf("expected exit code %d, got %d", tt.expectedExit, got)
			}
		})
	}
}
