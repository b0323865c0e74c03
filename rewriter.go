package texdiff

import (
	"fmt"
	"os"

	"github.com/cfes-fceg/texdiff/internal/pipeline"
)

// Rewrite runs the markup passes over latexdiff output: command
// normalization, presentation injection, then resource path rewriting.
// It fails with ErrMarkerNotFound when the preamble marker is missing.
func Rewrite(content string, rules pipeline.Rules) (string, error) {
	return rules.Apply(content)
}

// rewriteFile rewrites path in place and returns the markup counts of the result.
func rewriteFile(path string, rules pipeline.Rules) (pipeline.Counts, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- workspace path
	if err != nil {
		return pipeline.Counts{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}

	out, err := Rewrite(string(data), rules)
	if err != nil {
		return pipeline.Counts{}, err
	}

	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		return pipeline.Counts{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	return rules.Count(out), nil
}
