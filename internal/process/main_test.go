package process

import (
	"testing"

	"go.uber.org/goleak"
)

// Subprocess plumbing spawns goroutines for pipe copying and context
// watching; none of them may survive a finished Run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
