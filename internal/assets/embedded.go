package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed presentations/*.tex
var presentations embed.FS

// EmbeddedLoader loads presentations from the embedded filesystem.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPresentation loads a built-in presentation by name.
func (e *EmbeddedLoader) LoadPresentation(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := presentations.ReadFile("presentations/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPresentationNotFound, name)
	}

	return string(content), nil
}

// Names lists the built-in presentations in sorted order.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(presentations, "presentations")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".tex"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
