package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors for subprocess execution.
var (
	ErrEmptyCommand = errors.New("command name cannot be empty")
	ErrNotFound     = errors.New("executable not found")
	ErrTimeout      = errors.New("command timed out")
)

// DefaultWaitDelay bounds how long Run waits for output pipes to drain after
// the process has been killed.
const DefaultWaitDelay = 2 * time.Second

// Command describes one subprocess invocation.
type Command struct {
	Name    string        // executable name or path
	Args    []string      // arguments, without the executable
	Dir     string        // working directory (empty = current directory)
	Env     []string      // extra KEY=VALUE pairs appended to the parent environment
	Stdout  io.Writer     // nil discards output
	Stderr  io.Writer     // nil discards output
	Timeout time.Duration // 0 = no per-command deadline
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	WaitDelay time.Duration // 0 = DefaultWaitDelay
}

// NewExecRunner creates an ExecRunner with default settings.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: DefaultWaitDelay}
}

// Compile-time interface check.
var _ Runner = (*ExecRunner)(nil)

// Run starts the command and waits for it.
// Returns ErrNotFound if the executable cannot be located, ErrTimeout if the
// per-command deadline elapsed, and the context error if ctx was canceled.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Name == "" {
		return Result{ExitCode: -1}, ErrEmptyCommand
	}

	path, err := exec.LookPath(c.Name)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %s", ErrNotFound, c.Name)
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, path, c.Args...) // #nosec G204 -- tool paths come from trusted config
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = r.waitDelay()

	start := time.Now()
	runErr := cmd.Run()
	result := Result{
		ExitCode: exitCode(cmd),
		Duration: time.Since(start),
	}

	// Parent cancellation wins over the per-command deadline.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s: %w", c.Name, ctxErr)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return result, fmt.Errorf("%w: %s after %s", ErrTimeout, c.Name, c.Timeout)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return result, nil
		}
		return result, fmt.Errorf("running %s: %w", c.Name, runErr)
	}

	return result, nil
}

func (r *ExecRunner) waitDelay() time.Duration {
	if r == nil || r.WaitDelay <= 0 {
		return DefaultWaitDelay
	}
	return r.WaitDelay
}

// exitCode extracts the exit status, or -1 if the process never finished.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// LookPath reports the resolved path of an executable.
func LookPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
