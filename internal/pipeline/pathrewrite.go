package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultSharedDir is the directory shared resources live in at the repository root.
const DefaultSharedDir = "shared"

// Sentinel errors for resource path rewriting.
var (
	ErrRelativeRoot     = errors.New("repository root must be absolute")
	ErrInvalidSharedDir = errors.New("invalid shared directory name")
)

// SharedPattern returns the relative reference rewritten for sharedDir.
func SharedPattern(sharedDir string) string {
	return "../../" + sharedDir
}

// RewriteResourcePaths replaces every ../../<sharedDir> reference with
// <root>/<sharedDir>, using forward slashes so the result is valid LaTeX on
// every platform. A leading run of ./ segments is folded into the match.
//
// Only whole references are rewritten. The pattern must not be preceded by a
// path or name character, and must be followed by the end of text, a slash,
// or a character that cannot continue a directory name:
//
//	\input{../../shared/header}   rewritten
//	\graphicspath{{./../../shared/}} rewritten
//	../../shared-old/logo.png     unchanged (different directory)
//	../../../shared/logo.png      unchanged (different depth)
//	x/../../shared/logo.png       unchanged (nested inside another path)
//
// Every whole reference is rewritten, so the pattern survives only inside
// the unchanged forms above.
func RewriteResourcePaths(text, sharedDir, root string) (string, error) {
	if err := validateSharedDir(sharedDir); err != nil {
		return "", err
	}
	if !filepath.IsAbs(root) && !strings.HasPrefix(filepath.ToSlash(root), "/") {
		return "", fmt.Errorf("%w: %q", ErrRelativeRoot, root)
	}

	pattern := SharedPattern(sharedDir)
	if !strings.Contains(text, pattern) {
		return text, nil
	}

	replacement := strings.TrimRight(filepath.ToSlash(filepath.Clean(root)), "/") + "/" + sharedDir

	var b strings.Builder
	b.Grow(len(text) + len(replacement))

	written := 0
	search := 0
	for {
		idx := strings.Index(text[search:], pattern)
		if idx == -1 {
			break
		}
		start := search + idx
		end := start + len(pattern)
		search = end

		start = foldDotSlash(text, start)
		if !leftBoundary(text, start) || !rightBoundary(text, end) {
			continue
		}
		if start < written {
			continue
		}

		b.WriteString(text[written:start])
		b.WriteString(replacement)
		written = end
	}

	if written == 0 {
		return text, nil
	}
	b.WriteString(text[written:])
	return b.String(), nil
}

// foldDotSlash moves start back across any ./ segments preceding it.
func foldDotSlash(text string, start int) int {
	for start >= 2 && text[start-2:start] == "./" {
		if start >= 3 && text[start-3] == '.' {
			break
		}
		start -= 2
	}
	return start
}

func leftBoundary(text string, start int) bool {
	if start == 0 {
		return true
	}
	c := text[start-1]
	return c != '.' && c != '/' && !isNameByte(c)
}

func rightBoundary(text string, end int) bool {
	if end == len(text) {
		return true
	}
	c := text[end]
	return c == '/' || !(isNameByte(c) || c == '.')
}

func isNameByte(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

func validateSharedDir(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidSharedDir, name)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) && name[i] != '.' {
			return fmt.Errorf("%w: %q", ErrInvalidSharedDir, name)
		}
	}
	return nil
}
