package texdiff

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParseOutputTarget
// ---------------------------------------------------------------------------

func TestParseOutputTarget(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name    string
		input   string
		want    OutputTarget
		wantErr error
	}{
		{"empty uses default", "", OutputTarget{Dir: base, Name: "diff"}, nil},
		{"bare name", "bylaws-diff", OutputTarget{Dir: base, Name: "bylaws-diff"}, nil},
		{"tex suffix dropped", "bylaws-diff.tex", OutputTarget{Dir: base, Name: "bylaws-diff"}, nil},
		{"pdf suffix dropped", "bylaws-diff.pdf", OutputTarget{Dir: base, Name: "bylaws-diff"}, nil},
		{"other suffix kept", "v1.2", OutputTarget{Dir: base, Name: "v1.2"}, nil},
		{"relative dir", filepath.Join("reports", "agm"), OutputTarget{Dir: filepath.Join(base, "reports"), Name: "agm"}, nil},
		{"trailing separator", "reports" + string(filepath.Separator), OutputTarget{Dir: filepath.Join(base, "reports"), Name: "diff"}, nil},
		{"absolute dir", filepath.Join(abs, "agm.tex"), OutputTarget{Dir: abs, Name: "agm"}, nil},
		{"dot", ".", OutputTarget{}, ErrInvalidOutput},
		{"dot dot", "..", OutputTarget{}, ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOutputTarget(tt.input, base)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseOutputTarget(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseOutputTarget(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOutputTarget_Paths(t *testing.T) {
	t.Parallel()

	target := OutputTarget{Dir: filepath.FromSlash("/out"), Name: "agm"}
	if got, want := target.TexPath(), filepath.FromSlash("/out/agm.tex"); got != want {
		t.Errorf("TexPath() = %q, want %q", got, want)
	}
	if got, want := target.PDFPath(), filepath.FromSlash("/out/agm.pdf"); got != want {
		t.Errorf("PDFPath() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestPublisher_Publish
// ---------------------------------------------------------------------------

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	src := filepath.Join(ws, DiffFile)
	pdf := filepath.Join(ws, "diff.pdf")
	writeTestFile(t, src, "tex")
	writeTestFile(t, pdf, "%PDF")

	target := OutputTarget{Dir: filepath.Join(t.TempDir(), "nested", "out"), Name: "agm"}
	arts, err := (&Publisher{}).Publish(src, pdf, target)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	want := Artifacts{Source: target.TexPath(), PDF: target.PDFPath()}
	if diff := cmp.Diff(want, arts); diff != "" {
		t.Errorf("Artifacts mismatch (-want +got):\n%s", diff)
	}
	for path, content := range map[string]string{target.TexPath(): "tex", target.PDFPath(): "%PDF"} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if string(got) != content {
			t.Errorf("%s = %q, want %q", path, got, content)
		}
	}
}

func TestPublisher_Publish_SourceOnly(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), DiffFile)
	writeTestFile(t, src, "tex")
	target := OutputTarget{Dir: t.TempDir(), Name: "diff"}

	arts, err := (&Publisher{}).Publish(src, "", target)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if arts.PDF != "" {
		t.Errorf("PDF = %q, want empty", arts.PDF)
	}
	if _, err := os.Stat(target.PDFPath()); !os.IsNotExist(err) {
		t.Errorf("pdf should not be published, stat error = %v", err)
	}
}

func TestPublisher_Publish_MissingSource(t *testing.T) {
	t.Parallel()

	target := OutputTarget{Dir: t.TempDir(), Name: "diff"}
	_, err := (&Publisher{}).Publish(filepath.Join(t.TempDir(), "gone.tex"), "", target)
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("Publish() error = %v, want ErrPublishFailed", err)
	}
}
