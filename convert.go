package texdiff

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// ConvertRequest describes one word-processor to LaTeX conversion.
type ConvertRequest struct {
	Input  string // .docx path
	Output string // .tex path; empty = input stem + .tex next to the input
}

// Convert runs pandoc to turn a .docx file into a standalone LaTeX document
// and returns the written path.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (string, error) {
	if req.Input == "" {
		return "", ErrEmptyPath
	}
	if !fileutil.HasExtension(req.Input, DocxExt) {
		return "", fmt.Errorf("%w: %s (expected %s)", ErrInvalidExtension, req.Input, DocxExt)
	}
	input, err := filepath.Abs(req.Input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	if !fileutil.FileExists(input) {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}

	output := req.Output
	if output == "" {
		output = strings.TrimSuffix(input, DocxExt) + TexExt
	}
	if !fileutil.HasExtension(output, TexExt) {
		return "", fmt.Errorf("%w: %s (expected %s)", ErrInvalidExtension, output, TexExt)
	}
	if output, err = filepath.Abs(output); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	var stderr bytes.Buffer
	cmd := process.Command{
		Name:    s.cfg.tools.Pandoc,
		Args:    []string{input, "-f", "docx", "-t", "latex", "--standalone", "-o", output},
		Dir:     filepath.Dir(input),
		Stderr:  &stderr,
		Timeout: s.cfg.timeouts.Tool,
	}
	s.logger.Debug("running", "cmd", cmd.String())

	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return "", toolError(ctx, s.cfg.tools.Pandoc, ErrConversionFailed, err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%w: %s exited with status %d: %s",
			ErrConversionFailed, s.cfg.tools.Pandoc, res.ExitCode, strings.TrimSpace(stderr.String()))
	}
	if !fileutil.IsNonEmptyFile(output) {
		return "", fmt.Errorf("%w: %s produced no output", ErrConversionFailed, s.cfg.tools.Pandoc)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		s.logger.Warn("pandoc reported warnings", "stderr", msg)
	}

	return output, nil
}
