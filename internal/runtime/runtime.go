package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes child processes.
type Runner interface {
	// Output runs name in dir and returns its trimmed stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs name in dir, streaming stdout and stderr to the runner's
	// writers. A non-zero exit is returned as *ExitError.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExitError reports a child process that exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// CommandLine joins name and args the way a user would type them.
func CommandLine(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive streamed output from Run; default to
	// os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", CommandLine(name, args...), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: CommandLine(name, args...), ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("running %s: %w", CommandLine(name, args...), err)
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}
