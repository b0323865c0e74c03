package texdiff

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// pandocWrites returns a handler writing content to the -o argument.
func pandocWrites(content string, code int) func(process.Command) (process.Result, error) {
	return func(cmd process.Command) (process.Result, error) {
		for i, a := range cmd.Args {
			if a == "-o" && i+1 < len(cmd.Args) && content != "" {
				if err := os.WriteFile(cmd.Args[i+1], []byte(content), 0o644); err != nil {
					return process.Result{ExitCode: -1}, err
				}
			}
		}
		if code != 0 && cmd.Stderr != nil {
			_, _ = cmd.Stderr.Write([]byte("pandoc: unsupported docx feature\n"))
		}
		return process.Result{ExitCode: code}, nil
	}
}

func TestService_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "motion.docx")
	writeTestFile(t, input, "PK")

	runner := newMockRunner().on("pandoc", pandocWrites(`\documentclass{article}`, 0))
	svc, err := NewService(WithRunner(runner))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	got, err := svc.Convert(context.Background(), ConvertRequest{Input: input})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := filepath.Join(dir, "motion.tex")
	if got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}

	calls := runner.callsTo("pandoc")
	if len(calls) != 1 {
		t.Fatalf("pandoc calls = %d, want 1", len(calls))
	}
	wantArgs := []string{input, "-f", "docx", "-t", "latex", "--standalone", "-o", want}
	if diff := cmp.Diff(wantArgs, calls[0].Args); diff != "" {
		t.Errorf("pandoc args mismatch (-want +got):\n%s", diff)
	}
	if calls[0].Dir != dir || calls[0].Timeout != DefaultToolTimeout {
		t.Errorf("pandoc Dir = %q Timeout = %v", calls[0].Dir, calls[0].Timeout)
	}
}

func TestService_Convert_ExplicitOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "motion.docx")
	output := filepath.Join(t.TempDir(), "converted.tex")
	writeTestFile(t, input, "PK")

	svc, err := NewService(WithRunner(newMockRunner().on("pandoc", pandocWrites("x", 0))))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	got, err := svc.Convert(context.Background(), ConvertRequest{Input: input, Output: output})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != output {
		t.Errorf("Convert() = %q, want %q", got, output)
	}
}

func TestService_Convert_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "motion.docx")
	writeTestFile(t, input, "PK")

	tests := []struct {
		name    string
		runner  *mockRunner
		req     ConvertRequest
		wantErr []error
	}{
		{"empty input", newMockRunner(), ConvertRequest{}, []error{ErrEmptyPath}},
		{"not docx", newMockRunner(), ConvertRequest{Input: filepath.Join(dir, "motion.doc")}, []error{ErrInvalidExtension}},
		{"missing", newMockRunner(), ConvertRequest{Input: filepath.Join(dir, "gone.docx")}, []error{ErrInputNotFound}},
		{"output not tex", newMockRunner(), ConvertRequest{Input: input, Output: "out.md"}, []error{ErrInvalidExtension}},
		{"pandoc missing", newMockRunner(), ConvertRequest{Input: input}, []error{ErrConversionFailed, ErrToolNotFound}},
		{"pandoc fails", newMockRunner().on("pandoc", pandocWrites("", 64)), ConvertRequest{Input: input}, []error{ErrConversionFailed}},
		{"pandoc writes nothing", newMockRunner().on("pandoc", pandocWrites("", 0)), ConvertRequest{Input: input, Output: filepath.Join(t.TempDir(), "x.tex")}, []error{ErrConversionFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := NewService(WithRunner(tt.runner))
			if err != nil {
				t.Fatalf("NewService() error = %v", err)
			}
			_, err = svc.Convert(context.Background(), tt.req)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Convert() error = %v, want %v", err, want)
				}
			}
		})
	}
}
