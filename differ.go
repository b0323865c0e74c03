package texdiff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// Differ runs latexdiff on two resolved documents.
type Differ struct {
	Runner   process.Runner
	Tool     string
	Type     string
	Encoding string
	Timeout  time.Duration
	Logger   *log.Logger
}

// args returns the latexdiff command line for old and new.
// --flatten inlines \input and \include before diffing.
func (d *Differ) args(oldDoc, newDoc DocumentRef) []string {
	return []string{
		"--flatten",
		"--type=" + d.Type,
		"--encoding=" + d.Encoding,
		oldDoc.Path(),
		newDoc.Path(),
	}
}

// Generate writes the merged document to <workspace>/diff.tex and latexdiff's
// stderr to <workspace>/latexdiff.log. It runs in the directory of newDoc.
//
// The exit status is advisory: a non-zero exit that still produced output is
// returned as a warning. A missing or empty output is ErrDiffGenerationFailed.
func (d *Differ) Generate(ctx context.Context, oldDoc, newDoc DocumentRef, ws *Workspace) (StepResult, error) {
	logger := orDiscard(d.Logger)
	outPath := ws.Path(DiffFile)
	logPath := ws.Path(DiffLogFile)

	out, err := os.Create(outPath) // #nosec G304 -- workspace path
	if err != nil {
		return StepResult{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer func() { _ = out.Close() }()

	logFile, err := os.Create(logPath) // #nosec G304 -- workspace path
	if err != nil {
		return StepResult{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer func() { _ = logFile.Close() }()

	cmd := process.Command{
		Name:    d.Tool,
		Args:    d.args(oldDoc, newDoc),
		Dir:     newDoc.Dir(),
		Stdout:  out,
		Stderr:  logFile,
		Timeout: d.Timeout,
	}
	logger.Debug("running", "cmd", cmd.String(), "dir", cmd.Dir)

	res, runErr := d.Runner.Run(ctx, cmd)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%w: closing %s: %v", ErrWorkspace, outPath, err)
	}

	step := StepResult{ExitCode: res.ExitCode, Duration: res.Duration}

	if runErr != nil {
		return step, toolError(ctx, d.Tool, ErrDiffGenerationFailed, runErr)
	}

	if !fileutil.IsNonEmptyFile(outPath) {
		return step, fmt.Errorf("%w: %s produced no output (exit status %d)", ErrDiffGenerationFailed, d.Tool, res.ExitCode)
	}
	step.OutputPath = outPath

	if res.ExitCode != 0 {
		msg := fmt.Sprintf("%s exited with status %d but produced output", d.Tool, res.ExitCode)
		logger.Warn(msg, "log", logPath)
		step.Warnings = append(step.Warnings, msg)
	}

	return step, nil
}

// toolError classifies a runner failure under the stage sentinel.
// Interruption is passed through unwrapped so callers can tell it apart.
func toolError(ctx context.Context, tool string, sentinel, err error) error {
	if ctx.Err() != nil {
		return err
	}
	if errors.Is(err, process.ErrNotFound) {
		return fmt.Errorf("%w: %w: %s", sentinel, ErrToolNotFound, tool)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
