package texdiff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
)

// ResolveInputs resolves both diff inputs. The first failure is returned as a
// PipelineError naming the offending path.
func ResolveInputs(oldPath, newPath string) (DocumentRef, DocumentRef, error) {
	oldDoc, err := ResolveDocument(oldPath)
	if err != nil {
		return DocumentRef{}, DocumentRef{}, stageError(StateResolving, oldPath, err)
	}
	newDoc, err := ResolveDocument(newPath)
	if err != nil {
		return DocumentRef{}, DocumentRef{}, stageError(StateResolving, newPath, err)
	}
	return oldDoc, newDoc, nil
}

// ResolveDocument checks that path names an existing .tex file and returns
// its absolute, symlink-free form. The extension is checked first and is
// case-sensitive.
func ResolveDocument(path string) (DocumentRef, error) {
	if path == "" {
		return DocumentRef{}, ErrEmptyPath
	}
	if !fileutil.HasExtension(path, TexExt) {
		return DocumentRef{}, fmt.Errorf("%w: %s (expected %s)", ErrInvalidExtension, path, TexExt)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return DocumentRef{}, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return DocumentRef{}, fmt.Errorf("%w: %s", ErrInputNotFound, abs)
		}
		return DocumentRef{}, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return DocumentRef{}, fmt.Errorf("%w: not a regular file: %s", ErrInputNotFound, abs)
	}

	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return DocumentRef{}, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	return DocumentRef{path: filepath.Clean(real)}, nil
}

// FindRepoRoot returns the nearest ancestor of dir (inclusive) containing a
// .git entry. Without one it falls back to two levels above dir, the root
// that ../../<shared> references from dir point at.
func FindRepoRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}

	for current := abs; ; {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return filepath.Dir(filepath.Dir(abs))
}
