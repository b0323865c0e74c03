package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseDiffFlags
// ---------------------------------------------------------------------------

func TestParseDiffFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, rest, err := parseDiffFlags([]string{
		"old.tex", "-o", "out/agm", "new.tex",
		"--repo-root", "/srv/gov", "--type", "CFONT", "--presentation", "monochrome",
		"--asset-path", "/srv/assets", "--keep-temp", "--no-pdf", "--strict",
		"-t", "90s", "-c", "ci", "-q", "-v",
	}, &buf)
	if err != nil {
		t.Fatalf("parseDiffFlags: %v", err)
	}

	if len(rest) != 2 || rest[0] != "old.tex" || rest[1] != "new.tex" {
		t.Errorf("positional = %v, want [old.tex new.tex]", rest)
	}
	want := diffFlags{
		common:       commonFlags{config: "ci", quiet: true, verbose: true},
		output:       "out/agm",
		repoRoot:     "/srv/gov",
		timeout:      "90s",
		diffType:     "CFONT",
		presentation: "monochrome",
		assetPath:    "/srv/assets",
		keepTemp:     true,
		noPDF:        true,
		strict:       true,
	}
	if *f != want {
		t.Errorf("flags = %+v, want %+v", *f, want)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"help", []string{"-h"}, flag.ErrHelp},
		{"unknown flag", []string{"--frob"}, ErrUsage},
		{"missing value", []string{"--output"}, ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			_, _, err := parseDiffFlags(tt.args, &buf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseDiffFlags(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), "Usage: texdiff [diff] OLD_DOC NEW_DOC") {
				t.Errorf("usage should be printed, got %q", buf.String())
			}
		})
	}
}

func TestParseOtherFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cf, rest, err := parseConvertFlags([]string{"motion.docx", "-o", "motion.tex", "-t", "30s"}, &buf)
	if err != nil || cf.output != "motion.tex" || cf.timeout != "30s" || len(rest) != 1 {
		t.Errorf("parseConvertFlags = %+v, %v, %v", cf, rest, err)
	}

	ff, rest, err := parseFormatFlags([]string{"a.tex", "b.tex", "--check"}, &buf)
	if err != nil || !ff.check || len(rest) != 2 {
		t.Errorf("parseFormatFlags = %+v, %v, %v", ff, rest, err)
	}

	df, _, err := parseDoctorFlags([]string{"--json"}, &buf)
	if err != nil || !df.json {
		t.Errorf("parseDoctorFlags = %+v, %v", df, err)
	}
}

// ---------------------------------------------------------------------------
// TestParseTimeout
// ---------------------------------------------------------------------------

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"90s", 90 * time.Second, false},
		{"5m", 5 * time.Minute, false},
		{"soon", 0, true},
		{"0s", 0, true},
		{"-1m", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseTimeout(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTimeout) {
				t.Errorf("error should wrap ErrInvalidTimeout: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
