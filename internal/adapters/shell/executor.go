// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	statter ports.Statter
	root    string
}

// NewExecutor creates a new shell Executor. The statter evaluates action
// guards at execution time; relative guard files and working directories
// resolve against root, the same base the freshness resolver uses.
func NewExecutor(logger ports.Logger, statter ports.Statter, root string) *Executor {
	return &Executor{
		logger:  logger,
		statter: statter,
		root:    root,
	}
}

// Execute selects the target's command, runs it, and waits for completion.
//
// When the action carries a guard, the guard file's existence picks the
// command: the guarded command when it exists, the primary one otherwise.
// The environment is os.Environ() with the target's overrides applied on
// top. Output streams line-buffered into the logger and raw into stdout and
// stderr.
func (e *Executor) Execute(ctx context.Context, target *domain.Target, stdout, stderr io.Writer) error {
	argv, err := e.selectCommand(target)
	if err != nil {
		return err
	}
	if len(argv) == 0 {
		return nil
	}

	name := argv[0]
	args := argv[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command

	cmd.Dir = e.resolvePath(target.WorkingDir.String())

	cmd.Env = resolveEnvironment(os.Environ(), target.Environment)

	outLog := &lineWriter{logger: e.logger, level: domain.LogLevelInfo}
	errLog := &lineWriter{logger: e.logger, level: domain.LogLevelError}
	defer outLog.Flush()
	defer errLog.Flush()

	cmd.Stdout = io.MultiWriter(outLog, stdout)
	cmd.Stderr = io.MultiWriter(errLog, stderr)

	if err := cmd.Run(); err != nil {
		exitCode := -1 // unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		failure := domain.Annotate(domain.ErrActionFailed, "target", target.Name.String())
		failure = zerr.With(failure, "command", name)
		failure = zerr.With(failure, "exit_code", exitCode)
		return failure
	}

	return nil
}

// selectCommand evaluates the guard and returns the argv to run.
func (e *Executor) selectCommand(target *domain.Target) ([]string, error) {
	action := target.Action
	if !action.Guarded() {
		return action.Command, nil
	}

	guardFile := e.resolvePath(action.Guard.File.String())
	stat, err := e.statter.Stat(guardFile)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to evaluate guard"), "guard_file", guardFile)
	}
	return action.Select(stat.Exists), nil
}

// resolvePath resolves a possibly relative path against the executor root.
// An empty path means the root itself.
func (e *Executor) resolvePath(path string) string {
	if path == "" {
		return e.root
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.root, path)
}

// lineWriter buffers subprocess output and forwards complete lines to the
// logger. Partial lines are held until the next write or Flush.
type lineWriter struct {
	logger ports.Logger
	level  domain.LogLevel

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No complete line yet; put the partial back.
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return
	}
	w.emit(w.buf.String())
	w.buf.Reset()
}

func (w *lineWriter) emit(line string) {
	if line == "" {
		return
	}
	if w.level >= domain.LogLevelError {
		w.logger.Error(zerr.New(line))
		return
	}
	w.logger.Info(line)
}

// resolveEnvironment applies the target's overrides on top of the system
// environment.
func resolveEnvironment(sysEnv []string, targetEnv map[string]string) []string {
	if len(targetEnv) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(targetEnv))
	order := make([]string, 0, len(sysEnv)+len(targetEnv))

	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range targetEnv {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
