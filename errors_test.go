package texdiff

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cfes-fceg/texdiff/internal/pipeline"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// ---------------------------------------------------------------------------
// TestPipelineError
// ---------------------------------------------------------------------------

func TestPipelineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *PipelineError
		want string
	}{
		{
			name: "with path",
			err:  &PipelineError{Stage: StateDiffing, Path: "latexdiff", Err: ErrToolNotFound},
			want: "diffing latexdiff: external tool not found",
		},
		{
			name: "without path",
			err:  &PipelineError{Stage: StateResolving, Err: ErrEmptyPath},
			want: "resolving: path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, tt.err.Err) {
				t.Error("errors.Is does not match the wrapped sentinel")
			}
		})
	}
}

func TestStageError(t *testing.T) {
	t.Parallel()

	if stageError(StateDiffing, "x", nil) != nil {
		t.Error("stageError(nil) should be nil")
	}

	inner := stageError(StateResolving, "a.tex", ErrInputNotFound)
	outer := stageError(StatePublishing, "b", fmt.Errorf("wrapped: %w", inner))
	var pe *PipelineError
	if !errors.As(outer, &pe) || pe.Stage != StateResolving || pe.Path != "a.tex" {
		t.Errorf("stageError re-wrapped an existing PipelineError: %v", outer)
	}
}

func TestErrMarkerNotFound_SharedWithPipeline(t *testing.T) {
	t.Parallel()

	_, err := pipeline.InjectPresentation("no marker here", pipeline.DefaultMarker, "body")
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("pipeline error %v does not match ErrMarkerNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestToolError
// ---------------------------------------------------------------------------

func TestToolError(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		err       error
		wantIs    []error
		wantNotIs []error
	}{
		{
			name:   "not found",
			ctx:    context.Background(),
			err:    fmt.Errorf("%w: pandoc", process.ErrNotFound),
			wantIs: []error{ErrConversionFailed, ErrToolNotFound},
		},
		{
			name:      "timeout",
			ctx:       context.Background(),
			err:       process.ErrTimeout,
			wantIs:    []error{ErrConversionFailed, process.ErrTimeout},
			wantNotIs: []error{ErrToolNotFound},
		},
		{
			name:      "canceled passes through",
			ctx:       canceled,
			err:       fmt.Errorf("pandoc: %w", context.Canceled),
			wantIs:    []error{context.Canceled},
			wantNotIs: []error{ErrConversionFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := toolError(tt.ctx, "pandoc", ErrConversionFailed, tt.err)
			for _, want := range tt.wantIs {
				if !errors.Is(got, want) {
					t.Errorf("toolError() = %v, want match %v", got, want)
				}
			}
			for _, not := range tt.wantNotIs {
				if errors.Is(got, not) {
					t.Errorf("toolError() = %v, should not match %v", got, not)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestState_String
// ---------------------------------------------------------------------------

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StateResolving, "resolving"},
		{StateDiffing, "diffing"},
		{StateRewriting, "rewriting"},
		{StateCompiling, "compiling"},
		{StatePublishing, "publishing"},
		{StateDone, "done"},
		{StateFailed, "failed"},
		{State(-1), "unknown"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.state.String(); got != tt.want {
				t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
			}
		})
	}
}
