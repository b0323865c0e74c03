package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/config"
	"github.com/cfes-fceg/texdiff/internal/pipeline"
)

// Exit codes for the texdiff CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// 130 is the shell convention for termination by SIGINT.
const (
	ExitSuccess     = 0   // Diff published
	ExitGeneral     = 1   // General/unexpected error
	ExitUsage       = 2   // Invalid flags, config, or arguments
	ExitIO          = 3   // Input not found, publish or workspace failure
	ExitTool        = 4   // latexdiff, latexmk, pandoc or latexindent failed
	ExitRewrite     = 5   // Diff output could not be rewritten
	ExitInterrupted = 130 // SIGINT or SIGTERM
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interruption wins over whatever stage was running.
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Rewrite errors (exit 5)
	if errors.Is(err, pipeline.ErrMarkerNotFound) {
		return ExitRewrite
	}

	// External tool errors (exit 4)
	if errors.Is(err, texdiff.ErrToolNotFound) ||
		errors.Is(err, texdiff.ErrDiffGenerationFailed) ||
		errors.Is(err, texdiff.ErrCompilationFailed) ||
		errors.Is(err, texdiff.ErrConversionFailed) ||
		errors.Is(err, texdiff.ErrFormatFailed) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, texdiff.ErrInputNotFound) ||
		errors.Is(err, texdiff.ErrPublishFailed) ||
		errors.Is(err, texdiff.ErrWorkspace) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, texdiff.ErrEmptyPath) ||
		errors.Is(err, texdiff.ErrInvalidExtension) ||
		errors.Is(err, texdiff.ErrInvalidOutput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, assets.ErrPresentationNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, assets.ErrInvalidColor) ||
		errors.Is(err, pipeline.ErrInvalidSharedDir) ||
		errors.Is(err, pipeline.ErrInvalidRename) ||
		errors.Is(err, pipeline.ErrEmptyMarker) ||
		errors.Is(err, pipeline.ErrEmptyPresentation) ||
		errors.Is(err, pipeline.ErrRelativeRoot) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, flag.ErrHelp) {
		return ExitUsage
	}

	return ExitGeneral
}
