package texdiff

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// Compiler runs latexmk on a rewritten document.
type Compiler struct {
	Runner  process.Runner
	Tool    string
	Timeout time.Duration
	Strict  bool // a non-zero exit fails even when a PDF was produced
	Logger  *log.Logger
}

// args returns the latexmk command line. -f keeps going past recoverable
// errors so a PDF is produced whenever LaTeX can produce one.
func (c *Compiler) args(source, outDir string) []string {
	return []string{
		"-pdf",
		"-f",
		"-synctex=1",
		"-interaction=nonstopmode",
		"-outdir=" + outDir,
		source,
	}
}

// Compile builds <workspace>/<stem>.pdf from source with the repository root
// as working directory, so absolute shared paths and root-relative inputs
// resolve. Output goes to <workspace>/latexmk.log.
//
// Success means the PDF exists afterward. A non-zero exit with a PDF is a
// warning, unless Strict is set.
func (c *Compiler) Compile(ctx context.Context, source, root string, ws *Workspace) (StepResult, error) {
	logger := orDiscard(c.Logger)
	logPath := ws.Path(CompileLogFile)
	logFile, err := os.Create(logPath) // #nosec G304 -- workspace path
	if err != nil {
		return StepResult{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer func() { _ = logFile.Close() }()

	cmd := process.Command{
		Name:    c.Tool,
		Args:    c.args(source, ws.Dir()),
		Dir:     root,
		Stdout:  logFile,
		Stderr:  logFile,
		Timeout: c.Timeout,
	}
	logger.Debug("running", "cmd", cmd.String(), "dir", cmd.Dir)

	res, runErr := c.Runner.Run(ctx, cmd)
	_ = logFile.Close()

	step := StepResult{ExitCode: res.ExitCode, Duration: res.Duration}
	if runErr != nil {
		return step, toolError(ctx, c.Tool, ErrCompilationFailed, runErr)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	pdfPath := ws.Path(stem + PDFExt)
	if !fileutil.IsNonEmptyFile(pdfPath) {
		return step, fmt.Errorf("%w: %s produced no %s (exit status %d)", ErrCompilationFailed, c.Tool, filepath.Base(pdfPath), res.ExitCode)
	}

	if res.ExitCode != 0 {
		if c.Strict {
			return step, fmt.Errorf("%w: %s exited with status %d", ErrCompilationFailed, c.Tool, res.ExitCode)
		}
		msg := fmt.Sprintf("%s exited with status %d but produced %s", c.Tool, res.ExitCode, filepath.Base(pdfPath))
		logger.Warn(msg, "log", logPath)
		step.Warnings = append(step.Warnings, msg)
	}

	if n := countLaTeXWarnings(logPath); n > 0 {
		msg := fmt.Sprintf("%d LaTeX warnings during compilation", n)
		logger.Info(msg, "log", logPath)
		step.Warnings = append(step.Warnings, msg)
	}

	step.OutputPath = pdfPath
	return step, nil
}

// countLaTeXWarnings counts "LaTeX Warning:" and package warning lines in a log.
func countLaTeXWarnings(path string) int {
	f, err := os.Open(path) // #nosec G304 -- workspace path
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "LaTeX Warning:") ||
			(strings.HasPrefix(line, "Package ") && strings.Contains(line, " Warning:")) {
			n++
		}
	}
	return n
}
