package texdiff

import (
	"fmt"
	"os"
	"path/filepath"
)

// Files written into a run workspace.
const (
	DiffFile       = "diff.tex"
	DiffLogFile    = "latexdiff.log"
	CompileLogFile = "latexmk.log"
	ManifestFile   = "run.yaml"
)

// Workspace is a run-private temporary directory.
// Close removes it unless it was created with keep set.
type Workspace struct {
	dir    string
	keep   bool
	closed bool
}

// NewWorkspace creates a unique directory under parent (os.TempDir when empty).
func NewWorkspace(parent string, keep bool) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "texdiff-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	return &Workspace{dir: dir, keep: keep}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string { return filepath.Join(w.dir, name) }

// Keep reports whether Close retains the directory.
func (w *Workspace) Keep() bool { return w.keep }

// Close removes the workspace unless it is retained. Safe to call twice.
func (w *Workspace) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true
	if w.keep {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("%w: removing %s: %v", ErrWorkspace, w.dir, err)
	}
	return nil
}
