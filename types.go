package texdiff

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff/internal/pipeline"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// Document and artifact extensions.
const (
	TexExt  = ".tex"
	PDFExt  = ".pdf"
	DocxExt = ".docx"
)

// DocumentRef is a resolved, absolute, symlink-free path to a .tex file.
// Obtain one with ResolveDocument or ResolveInputs.
type DocumentRef struct {
	path string
}

// Path returns the absolute path.
func (d DocumentRef) Path() string { return d.path }

// Dir returns the directory containing the document.
func (d DocumentRef) Dir() string { return filepath.Dir(d.path) }

// Stem returns the file name without its extension.
func (d DocumentRef) Stem() string {
	return strings.TrimSuffix(filepath.Base(d.path), filepath.Ext(d.path))
}

// IsZero reports whether the reference was never resolved.
func (d DocumentRef) IsZero() bool { return d.path == "" }

func (d DocumentRef) String() string { return d.path }

// StepResult is the outcome of one external tool step.
// A step succeeded when it left its expected output behind, whatever the
// tool's exit status.
type StepResult struct {
	OutputPath string // empty = no output
	Warnings   []string
	ExitCode   int
	Duration   time.Duration
}

// Succeeded reports whether the step produced its output.
func (r StepResult) Succeeded() bool {
	return r.OutputPath != ""
}

// OutputTarget is where published artifacts go: <Dir>/<Name>.tex and .pdf.
type OutputTarget struct {
	Dir  string
	Name string
}

// TexPath returns the published source path.
func (t OutputTarget) TexPath() string { return filepath.Join(t.Dir, t.Name+TexExt) }

// PDFPath returns the published PDF path.
func (t OutputTarget) PDFPath() string { return filepath.Join(t.Dir, t.Name+PDFExt) }

// Artifacts lists published files. PDF is empty when compilation was skipped.
type Artifacts struct {
	Source string
	PDF    string
}

// Request describes one diff run.
type Request struct {
	Old      string // OLD_DOC path
	New      string // NEW_DOC path
	Output   string // base name or path, default "diff"
	RepoRoot string // empty = detect from New
	NoPDF    bool   // skip compilation
	KeepTemp bool   // retain the workspace
}

// Result describes a finished diff run.
type Result struct {
	RunID     string
	State     State
	Artifacts Artifacts
	Workspace string // set only when the workspace was retained
	RepoRoot  string
	Counts    pipeline.Counts
	Warnings  []string
}

// Tools names the external executables.
type Tools struct {
	Latexdiff   string
	Latexmk     string
	Pandoc      string
	Latexindent string
}

// DefaultTools returns the bare executable names, resolved on PATH.
func DefaultTools() Tools {
	return Tools{
		Latexdiff:   "latexdiff",
		Latexmk:     "latexmk",
		Pandoc:      "pandoc",
		Latexindent: "latexindent",
	}
}

// Timeouts bounds each external tool invocation.
type Timeouts struct {
	Diff    time.Duration
	Compile time.Duration
	Tool    time.Duration
}

// Default timeouts.
const (
	DefaultDiffTimeout    = 2 * time.Minute
	DefaultCompileTimeout = 5 * time.Minute
	DefaultToolTimeout    = time.Minute
)

// Default markup options passed to latexdiff.
const (
	DefaultDiffType   = "UNDERLINE"
	DefaultEncoding   = "utf8"
	DefaultOutputName = "diff"
)

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	tools        Tools
	timeouts     Timeouts
	diffType     string
	encoding     string
	marker       string
	sharedDir    string
	presentation string // rendered block body; empty = embedded default
	strict       bool
	outputDir    string
	tempDir      string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner replaces the subprocess runner, typically with a fake in tests.
func WithRunner(r process.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithTools overrides executable names or paths. Empty fields keep defaults.
func WithTools(t Tools) Option {
	return func(s *Service) {
		if t.Latexdiff != "" {
			s.cfg.tools.Latexdiff = t.Latexdiff
		}
		if t.Latexmk != "" {
			s.cfg.tools.Latexmk = t.Latexmk
		}
		if t.Pandoc != "" {
			s.cfg.tools.Pandoc = t.Pandoc
		}
		if t.Latexindent != "" {
			s.cfg.tools.Latexindent = t.Latexindent
		}
	}
}

// WithTimeout sets the same deadline for every external tool.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("texdiff: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeouts = Timeouts{Diff: d, Compile: d, Tool: d}
	}
}

// WithTimeouts sets per-step deadlines. Non-positive fields keep defaults.
func WithTimeouts(t Timeouts) Option {
	return func(s *Service) {
		if t.Diff > 0 {
			s.cfg.timeouts.Diff = t.Diff
		}
		if t.Compile > 0 {
			s.cfg.timeouts.Compile = t.Compile
		}
		if t.Tool > 0 {
			s.cfg.timeouts.Tool = t.Tool
		}
	}
}

// WithDiffType sets the latexdiff --type markup style.
func WithDiffType(t string) Option {
	return func(s *Service) {
		if t != "" {
			s.cfg.diffType = t
		}
	}
}

// WithEncoding sets the latexdiff --encoding value.
func WithEncoding(enc string) Option {
	return func(s *Service) {
		if enc != "" {
			s.cfg.encoding = enc
		}
	}
}

// WithMarker sets the end-of-preamble line the presentation block precedes.
func WithMarker(marker string) Option {
	return func(s *Service) {
		if marker != "" {
			s.cfg.marker = marker
		}
	}
}

// WithSharedDir sets the repository directory that ../../<dir> references point to.
func WithSharedDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.cfg.sharedDir = dir
		}
	}
}

// WithPresentation sets the presentation block body, already rendered.
func WithPresentation(body string) Option {
	return func(s *Service) {
		s.cfg.presentation = body
	}
}

// WithStrictCompile makes a non-zero latexmk exit fatal even when a PDF exists.
func WithStrictCompile(strict bool) Option {
	return func(s *Service) {
		s.cfg.strict = strict
	}
}

// WithOutputDir sets the directory relative output names resolve against.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.cfg.outputDir = dir
	}
}

// WithTempDir sets the parent directory for run workspaces (default os.TempDir).
func WithTempDir(dir string) Option {
	return func(s *Service) {
		s.cfg.tempDir = dir
	}
}
