package main

// Notes:
// - exitCodeFor: every sentinel the CLI can surface is mapped, plus wrapped
//   and PipelineError-wrapped forms to check the errors.Is chain.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/config"
	"github.com/cfes-fceg/texdiff/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	staged := func(stage texdiff.State, err error) error {
		return &texdiff.PipelineError{Stage: stage, Err: err}
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},

		// Interruption (130)
		{"canceled", context.Canceled, ExitInterrupted},
		{"canceled inside tool failure", fmt.Errorf("%w: %w", texdiff.ErrCompilationFailed, context.Canceled), ExitInterrupted},
		{"staged cancel", staged(texdiff.StateDiffing, context.Canceled), ExitInterrupted},

		// Rewrite (5)
		{"marker not found", pipeline.ErrMarkerNotFound, ExitRewrite},
		{"staged marker", staged(texdiff.StateRewriting, texdiff.ErrMarkerNotFound), ExitRewrite},

		// Tools (4)
		{"tool not found", texdiff.ErrToolNotFound, ExitTool},
		{"diff failed", texdiff.ErrDiffGenerationFailed, ExitTool},
		{"compile failed", staged(texdiff.StateCompiling, texdiff.ErrCompilationFailed), ExitTool},
		{"conversion failed", texdiff.ErrConversionFailed, ExitTool},
		{"format failed", texdiff.ErrFormatFailed, ExitTool},

		// I/O (3)
		{"input not found", staged(texdiff.StateResolving, texdiff.ErrInputNotFound), ExitIO},
		{"publish failed", texdiff.ErrPublishFailed, ExitIO},
		{"workspace", texdiff.ErrWorkspace, ExitIO},
		{"asset read", assets.ErrAssetRead, ExitIO},
		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},

		// Usage (2)
		{"empty path", texdiff.ErrEmptyPath, ExitUsage},
		{"invalid extension", texdiff.ErrInvalidExtension, ExitUsage},
		{"invalid output", texdiff.ErrInvalidOutput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"presentation not found", assets.ErrPresentationNotFound, ExitUsage},
		{"invalid color", assets.ErrInvalidColor, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"relative root", pipeline.ErrRelativeRoot, ExitUsage},
		{"empty marker", pipeline.ErrEmptyMarker, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"help", flag.ErrHelp, ExitUsage},

		// General (1)
		{"needs formatting", ErrNeedsFormatting, ExitGeneral},
		{"unknown", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("0, 1 and 2 must keep their Unix meaning")
	}
	for _, code := range []int{ExitIO, ExitTool, ExitRewrite} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom code %d must be in 3..125", code)
		}
	}
	if ExitInterrupted != 128+2 {
		t.Errorf("ExitInterrupted = %d, want 130 (128 + SIGINT)", ExitInterrupted)
	}
}
