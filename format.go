package texdiff

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// FormatResult reports the outcome for one formatted file.
type FormatResult struct {
	Path    string
	Changed bool
}

// Format runs latexindent over each file in order. With check set nothing is
// modified and Changed reports whether formatting would alter the file.
// Processing stops at the first failure; results for earlier files are returned.
func (s *Service) Format(ctx context.Context, paths []string, check bool) ([]FormatResult, error) {
	results := make([]FormatResult, 0, len(paths))
	for _, p := range paths {
		doc, err := ResolveDocument(p)
		if err != nil {
			return results, err
		}
		r, err := s.formatOne(ctx, doc, check)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// formatOne indents a single file. latexindent's backups and indent.log go
// into a throwaway cruft directory so the source tree stays clean.
func (s *Service) formatOne(ctx context.Context, doc DocumentRef, check bool) (FormatResult, error) {
	ws, err := NewWorkspace(s.cfg.tempDir, false)
	if err != nil {
		return FormatResult{}, err
	}
	defer func() { _ = ws.Close() }()

	before, err := os.ReadFile(doc.Path())
	if err != nil {
		return FormatResult{}, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	target := doc.Path()
	args := []string{"-s", "-l", "-c=" + ws.Dir()}
	if check {
		target = ws.Path(filepath.Base(doc.Path()))
		args = append(args, "-o="+target)
	} else {
		args = append(args, "-w")
	}
	args = append(args, doc.Path())

	var stderr bytes.Buffer
	cmd := process.Command{
		Name:    s.cfg.tools.Latexindent,
		Args:    args,
		Dir:     doc.Dir(),
		Stderr:  &stderr,
		Timeout: s.cfg.timeouts.Tool,
	}
	s.logger.Debug("running", "cmd", cmd.String())

	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return FormatResult{}, toolError(ctx, s.cfg.tools.Latexindent, ErrFormatFailed, err)
	}
	if res.ExitCode != 0 {
		return FormatResult{}, fmt.Errorf("%w: %s: %s exited with status %d: %s",
			ErrFormatFailed, doc.Path(), s.cfg.tools.Latexindent, res.ExitCode, strings.TrimSpace(stderr.String()))
	}

	after, err := os.ReadFile(target) // #nosec G304 -- document or workspace path
	if err != nil {
		return FormatResult{}, fmt.Errorf("%w: %s: reading result: %v", ErrFormatFailed, doc.Path(), err)
	}

	return FormatResult{Path: doc.Path(), Changed: !bytes.Equal(before, after)}, nil
}
