package main

// Notes:
// - Tools are discovered through Environment.LookPath and probed through
//   Environment.Runner, so no real TeX installation is needed.
// - Container and CI detection depend on the host; only the JSON shape is
//   checked for them.

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// lookPathFor finds only the named tools, at /usr/bin/<name>.
func lookPathFor(names ...string) func(string) (string, bool) {
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	return func(name string) (string, bool) {
		if found[name] {
			return "/usr/bin/" + name, true
		}
		return "", false
	}
}

func doctorEnv(found ...string) (*Environment, *bytes.Buffer) {
	runner := newFakeRunner()
	for _, name := range found {
		runner.on(name, printsVersion(name+" 1.3.4"))
	}
	var stdout, stderr bytes.Buffer
	return &Environment{Stdout: &stdout, Stderr: &stderr, Runner: runner, LookPath: lookPathFor(found...)}, &stdout
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSON
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		found      []string
		wantStatus string
		wantCode   int
	}{
		{"everything installed", []string{"latexdiff", "latexmk", "pandoc", "latexindent"}, "ready", ExitSuccess},
		{"optional tools missing", []string{"latexdiff"}, "warnings", ExitSuccess},
		{"latexdiff missing", []string{"latexmk", "pandoc", "latexindent"}, "errors", ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout := doctorEnv(tt.found...)
			code := runDoctorCmd(t.Context(), []string{"--json"}, env)

			var result doctorResult
			if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, stdout)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (warnings %v, errors %v)", result.Status, tt.wantStatus, result.Warnings, result.Errors)
			}
			if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
				t.Errorf("platform = %s/%s", result.Env.OS, result.Env.Arch)
			}
			if len(result.Tools) != len(doctorTools) {
				t.Fatalf("got %d tools, want %d", len(result.Tools), len(doctorTools))
			}
			for _, tool := range result.Tools {
				if tool.Found && tool.Version != tool.Name+" 1.3.4" {
					t.Errorf("%s version = %q", tool.Name, tool.Version)
				}
				if tool.Required != (tool.Name == "latexdiff") {
					t.Errorf("%s required = %v", tool.Name, tool.Required)
				}
			}
		})
	}
}

func TestRunDoctorCmd_VersionProbeFails(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	runner := newFakeRunner().on("latexdiff", func(process.Command) (process.Result, error) {
		return process.Result{ExitCode: 2}, nil
	})
	env := &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}, Runner: runner, LookPath: lookPathFor("latexdiff")}

	runDoctorCmd(t.Context(), []string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !result.Tools[0].Found || result.Tools[0].Version != "" {
		t.Errorf("latexdiff = %+v, want found without version", result.Tools[0])
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "could not get latexdiff version") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Human
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Human(t *testing.T) {
	t.Parallel()

	env, stdout := doctorEnv("latexdiff", "latexmk")
	runDoctorCmd(t.Context(), nil, env)

	out := stdout.String()
	for _, want := range []string{
		"texdiff doctor",
		"[OK] latexdiff: /usr/bin/latexdiff (latexdiff 1.3.4)",
		"[WARN] pandoc: not found",
		"Install it or set TEXDIFF_PANDOC",
		runtime.GOOS + "/" + runtime.GOARCH,
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_Help(t *testing.T) {
	t.Parallel()

	env, stdout := doctorEnv()
	if code := runDoctorCmd(t.Context(), []string{"-h"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	if stdout.Len() != 0 {
		t.Error("-h should not run the checks")
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"", ""},
		{"pandoc 3.1\nCopyright", "pandoc 3.1"},
		{"\n  latexmk 4.83  \n", "latexmk 4.83"},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
