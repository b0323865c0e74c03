package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// fakeRunner dispatches by executable base name and records calls.
// Unknown executables fail with process.ErrNotFound.
type fakeRunner struct {
	mu       sync.Mutex
	handlers map[string]func(process.Command) (process.Result, error)
	calls    []process.Command
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{handlers: map[string]func(process.Command) (process.Result, error){}}
}

func (f *fakeRunner) on(name string, h func(process.Command) (process.Result, error)) *fakeRunner {
	f.handlers[name] = h
	return f
}

func (f *fakeRunner) Run(ctx context.Context, cmd process.Command) (process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	h, ok := f.handlers[filepath.Base(cmd.Name)]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return process.Result{ExitCode: -1}, err
	}
	if !ok {
		return process.Result{ExitCode: -1}, fmt.Errorf("%w: %s", process.ErrNotFound, cmd.Name)
	}
	return h(cmd)
}

func (f *fakeRunner) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if filepath.Base(c.Name) == name {
			n++
		}
	}
	return n
}

const testDiff = `\documentclass{article}
\begin{document}
\input{../../shared/signature}
Quorum is \DIFdelbegin \DIFdel{ten}\DIFdelend \DIFaddbegin \DIFadd{twelve}\DIFaddend  members.
\end{document}
`

func writesDiff(content string) func(process.Command) (process.Result, error) {
	return func(cmd process.Command) (process.Result, error) {
		_, _ = cmd.Stdout.Write([]byte(content))
		return process.Result{}, nil
	}
}

func buildsPDF(cmd process.Command) (process.Result, error) {
	var outDir string
	for _, a := range cmd.Args {
		if v, ok := strings.CutPrefix(a, "-outdir="); ok {
			outDir = v
		}
	}
	src := cmd.Args[len(cmd.Args)-1]
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if err := os.WriteFile(filepath.Join(outDir, stem+".pdf"), []byte("%PDF-1.5\n"), 0o644); err != nil {
		return process.Result{ExitCode: -1}, err
	}
	return process.Result{}, nil
}

func printsVersion(version string) func(process.Command) (process.Result, error) {
	return func(cmd process.Command) (process.Result, error) {
		_, _ = cmd.Stdout.Write([]byte(version + "\nmore detail\n"))
		return process.Result{}, nil
	}
}

// testEnv returns an Environment capturing output, with runner as subprocess fake.
func testEnv(runner process.Runner) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout:   &stdout,
		Stderr:   &stderr,
		Runner:   runner,
		LookPath: func(name string) (string, bool) { return "", false },
	}, &stdout, &stderr
}

// setupRepo creates a repository with two revisions and returns their paths.
func setupRepo(t *testing.T) (root, oldDoc, newDoc string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	files := map[string]string{
		".git/HEAD":             "ref: refs/heads/main\n",
		"shared/signature.tex":  "Signed.\n",
		"bylaws/v1/bylaws.tex":  "\\documentclass{article}\n\\begin{document}\nQuorum is ten members.\n\\end{document}\n",
		"bylaws/v2/bylaws.tex":  "\\documentclass{article}\n\\begin{document}\nQuorum is twelve members.\n\\end{document}\n",
		"bylaws/v2/notes.md":    "not latex\n",
		"bylaws/v2/motion.docx": "PK",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root, filepath.Join(root, "bylaws", "v1", "bylaws.tex"), filepath.Join(root, "bylaws", "v2", "bylaws.tex")
}

// writeConfig writes a YAML config into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "texdiff.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
