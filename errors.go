package texdiff

import (
	"errors"
	"fmt"

	"github.com/cfes-fceg/texdiff/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input resolution errors.
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInputNotFound    = errors.New("input document not found")
	ErrInvalidExtension = errors.New("invalid document extension")

	// External tool errors.
	ErrToolNotFound         = errors.New("external tool not found")
	ErrDiffGenerationFailed = errors.New("diff generation failed")
	ErrCompilationFailed    = errors.New("compilation failed")
	ErrConversionFailed     = errors.New("conversion failed")
	ErrFormatFailed         = errors.New("formatting failed")

	// ErrMarkerNotFound is the rewriter's marker error, so errors.Is matches
	// failures from either package.
	ErrMarkerNotFound = pipeline.ErrMarkerNotFound

	// Filesystem errors.
	ErrWorkspace     = errors.New("workspace error")
	ErrPublishFailed = errors.New("publishing failed")
	ErrInvalidOutput = errors.New("invalid output name")
)

// PipelineError reports the stage and path a run failed on.
type PipelineError struct {
	Stage State
	Path  string
	Err   error
}

func (e *PipelineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// stageError wraps err unless it is nil or already a PipelineError.
func stageError(stage State, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return err
	}
	return &PipelineError{Stage: stage, Path: path, Err: err}
}
