// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// packages maps each tool to the TeX Live or distribution package shipping it.
var packages = map[string]string{
	"latexdiff":   "texlive-extra-utils",
	"latexmk":     "latexmk",
	"latexindent": "texlive-extra-utils",
	"pandoc":      "pandoc",
}

// ForToolNotFound returns hints for a missing external executable.
// envVar names the variable that overrides the tool path.
func ForToolNotFound(tool, envVar string) string {
	var hints []string

	name := filepath.Base(tool)
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if pkg, ok := packages[name]; ok {
		if inCI || IsInContainer() {
			hints = append(hints, "install "+pkg+" in the image, or use texlive/texlive")
		} else {
			hints = append(hints, "install TeX Live ("+name+" ships in "+pkg+")")
		}
	}
	if envVar != "" && os.Getenv(envVar) == "" {
		hints = append(hints, "set "+envVar+" to a custom path")
	}
	hints = append(hints, "run 'texdiff doctor' to check the toolchain")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForMarkerNotFound returns a hint for diff output without a preamble end.
func ForMarkerNotFound(marker string) string {
	return format("NEW_DOC must contain a line reading " + marker + ", or set rewrite.marker")
}

// ForCompilationFailed returns a hint pointing at the latexmk log.
// With a retained workspace the log path is named directly.
func ForCompilationFailed(workspace string) string {
	if workspace != "" {
		return format("see " + filepath.Join(workspace, "latexmk.log"))
	}
	return format("rerun with --keep-temp to inspect latexmk.log, or use --no-pdf")
}

// ForDiffFailed returns a hint pointing at the latexdiff log.
func ForDiffFailed(workspace string) string {
	if workspace != "" {
		return format("see " + filepath.Join(workspace, "latexdiff.log"))
	}
	return format("rerun with --keep-temp to inspect latexdiff.log")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/texdiff/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPresentationNotFound returns hints for presentation not found errors.
func ForPresentationNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
