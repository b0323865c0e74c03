package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEmptyPresentation is returned when Rules carries no presentation body.
var ErrEmptyPresentation = errors.New("presentation block cannot be empty")

// Rules configures the three rewrite passes.
// The passes always run in the same order: normalization, injection, path rewriting.
type Rules struct {
	Renames      []Rename
	Marker       string
	Presentation string // block body, without sentinel lines
	SharedDir    string
	RepoRoot     string // absolute
}

// DefaultRules returns rules with the standard renames, marker and shared directory.
func DefaultRules(repoRoot, presentation string) Rules {
	return Rules{
		Renames:      DefaultRenames(),
		Marker:       DefaultMarker,
		Presentation: presentation,
		SharedDir:    DefaultSharedDir,
		RepoRoot:     repoRoot,
	}
}

// Validate checks rules before any pass runs.
func (r Rules) Validate() error {
	for _, rn := range r.Renames {
		if err := rn.Validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.Marker) == "" {
		return ErrEmptyMarker
	}
	if strings.TrimSpace(r.Presentation) == "" {
		return ErrEmptyPresentation
	}
	if err := validateSharedDir(r.SharedDir); err != nil {
		return err
	}
	if !filepath.IsAbs(r.RepoRoot) {
		return fmt.Errorf("%w: %q", ErrRelativeRoot, r.RepoRoot)
	}
	return nil
}

// Apply runs the passes over text. The same rules applied to the same text
// always produce the same output, and applying them to their own output is a
// no-op.
func (r Rules) Apply(text string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	text = NormalizeCommands(text, r.Renames)

	text, err := InjectPresentation(text, r.Marker, r.Presentation)
	if err != nil {
		return "", err
	}

	return RewriteResourcePaths(text, r.SharedDir, r.RepoRoot)
}

// Count reports the markup spans in the body after the rules' marker.
func (r Rules) Count(text string) Counts {
	return countSpans(Spans(Body(text, r.Marker)))
}
