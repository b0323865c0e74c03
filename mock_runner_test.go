package texdiff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// mockRunner dispatches commands by executable name to canned handlers and
// records every call. Unknown executables fail with process.ErrNotFound.
type mockRunner struct {
	mu       sync.Mutex
	handlers map[string]func(process.Command) (process.Result, error)
	calls    []process.Command
}

func newMockRunner() *mockRunner {
	return &mockRunner{handlers: map[string]func(process.Command) (process.Result, error){}}
}

func (m *mockRunner) on(name string, h func(process.Command) (process.Result, error)) *mockRunner {
	m.handlers[name] = h
	return m
}

func (m *mockRunner) Run(ctx context.Context, cmd process.Command) (process.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	h, ok := m.handlers[cmd.Name]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return process.Result{ExitCode: -1}, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if !ok {
		return process.Result{ExitCode: -1}, fmt.Errorf("%w: %s", process.ErrNotFound, cmd.Name)
	}
	return h(cmd)
}

func (m *mockRunner) callsTo(name string) []process.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []process.Command
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// latexdiffWrites returns a handler printing content to stdout and exiting with code.
func latexdiffWrites(content string, code int) func(process.Command) (process.Result, error) {
	return func(cmd process.Command) (process.Result, error) {
		if cmd.Stdout != nil {
			_, _ = cmd.Stdout.Write([]byte(content))
		}
		if cmd.Stderr != nil && code != 0 {
			_, _ = cmd.Stderr.Write([]byte("WARNING: sections differ\n"))
		}
		return process.Result{ExitCode: code}, nil
	}
}

// latexmkBuilds returns a handler creating <outdir>/<stem>.pdf unless noPDF is set.
func latexmkBuilds(code int, noPDF bool) func(process.Command) (process.Result, error) {
	return func(cmd process.Command) (process.Result, error) {
		var outDir string
		for _, a := range cmd.Args {
			if v, ok := strings.CutPrefix(a, "-outdir="); ok {
				outDir = v
			}
		}
		source := cmd.Args[len(cmd.Args)-1]
		if cmd.Stdout != nil {
			_, _ = cmd.Stdout.Write([]byte("Latexmk: applying rule 'pdflatex'...\nLaTeX Warning: Reference `sec:x' undefined.\n"))
		}
		if !noPDF {
			stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			if err := os.WriteFile(filepath.Join(outDir, stem+".pdf"), []byte("%PDF-1.5\n"), 0o644); err != nil {
				return process.Result{ExitCode: -1}, err
			}
		}
		return process.Result{ExitCode: code}, nil
	}
}

// testRepo is a throwaway governance repository with two revisions of one document.
type testRepo struct {
	root   string // symlink-free
	oldDoc string
	newDoc string
}

const oldDocContent = `\documentclass{article}
\begin{document}
The committee meets monthly.
\end{document}
`

const newDocContent = `\documentclass{article}
\begin{document}
The committee meets monthly. Minutes are published within a week.
\end{document}
`

// cannedDiff is latexdiff output for oldDocContent and newDocContent.
const cannedDiff = `\documentclass{article}
\graphicspath{{../../shared/img/}}
%DIF UNDERLINE PREAMBLE %DIF PREAMBLE
\RequirePackage[normalem]{ulem} %DIF PREAMBLE
\providecommand{\DIFadd}[1]{{\protect\color{blue}\uwave{#1}}} %DIF PREAMBLE
\providecommand{\DIFdel}[1]{{\protect\color{red}\sout{#1}}} %DIF PREAMBLE
\providecommand{\DIFaddFL}[1]{\DIFadd{#1}} %DIF PREAMBLE
\providecommand{\DIFdelFL}[1]{\DIFdel{#1}} %DIF PREAMBLE
\begin{document}
\input{../../shared/signature}
The committee meets monthly. \DIFaddbegin \DIFadd{Minutes are published within a week.}\DIFaddend 
\end{document}
`

func newTestRepo(t *testing.T) testRepo {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	for _, dir := range []string{".git", "shared", filepath.Join("bylaws", "v1"), filepath.Join("bylaws", "v2")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	repo := testRepo{
		root:   root,
		oldDoc: filepath.Join(root, "bylaws", "v1", "bylaws.tex"),
		newDoc: filepath.Join(root, "bylaws", "v2", "bylaws.tex"),
	}
	writeTestFile(t, repo.oldDoc, oldDocContent)
	writeTestFile(t, repo.newDoc, newDocContent)
	return repo
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertEmptyDir fails if dir contains anything, i.e. a workspace leaked.
func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("%s not empty: %v", dir, names)
	}
}
