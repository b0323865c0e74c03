//go:build integration

package texdiff

// Notes:
// - Integration tests run the real latexdiff and latexmk from PATH.
// - requireTool skips rather than fails so the suite stays usable on
//   machines without a TeX distribution.

import (
	"testing"
	"time"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// testTimeout bounds a full pipeline run including a cold latexmk.
const testTimeout = 3 * time.Minute

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, ok := process.LookPath(name); !ok {
		t.Skipf("%s not on PATH", name)
	}
}
