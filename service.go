package texdiff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/pipeline"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// Service orchestrates the diff pipeline and the auxiliary tool commands.
// Create with NewService and reuse it for any number of sequential runs.
type Service struct {
	cfg    serviceConfig
	logger *log.Logger
	runner process.Runner
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithTools).
// Returns error if the default presentation cannot be loaded.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			tools: DefaultTools(),
			timeouts: Timeouts{
				Diff:    DefaultDiffTimeout,
				Compile: DefaultCompileTimeout,
				Tool:    DefaultToolTimeout,
			},
			diffType:  DefaultDiffType,
			encoding:  DefaultEncoding,
			marker:    pipeline.DefaultMarker,
			sharedDir: pipeline.DefaultSharedDir,
		},
		logger: orDiscard(nil),
		runner: process.NewExecRunner(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.presentation == "" {
		body, err := DefaultPresentation()
		if err != nil {
			return nil, err
		}
		s.cfg.presentation = body
	}

	return s, nil
}

// DefaultPresentation renders the embedded default presentation with the
// default colors.
func DefaultPresentation() (string, error) {
	tmpl, err := assets.LoadPresentation(assets.DefaultPresentationName)
	if err != nil {
		return "", fmt.Errorf("loading presentation: %w", err)
	}
	return assets.Render(tmpl, assets.DefaultColors())
}

// Rules returns the rewrite rules for a repository root.
func (s *Service) Rules(repoRoot string) pipeline.Rules {
	rules := pipeline.DefaultRules(repoRoot, s.cfg.presentation)
	rules.Marker = s.cfg.marker
	rules.SharedDir = s.cfg.sharedDir
	return rules
}

// Diff runs Resolving, Diffing, Rewriting, Compiling (unless NoPDF) and
// Publishing in order. The workspace is removed on every return path unless
// KeepTemp is set. Nothing is published when an earlier stage fails.
//
// Errors are *PipelineError values wrapping the stage sentinel. An
// interrupted run wraps the context error instead.
func (s *Service) Diff(ctx context.Context, req Request) (result *Result, err error) {
	runID := uuid.NewString()
	logger := s.logger.With("run", runID[:8])
	result = &Result{RunID: runID, State: StateResolving}

	manifest := &Manifest{RunID: runID, Old: req.Old, New: req.New}

	fail := func(stage State, path string, cause error) (*Result, error) {
		result.State = StateFailed
		manifest.State = StateFailed.String()
		manifest.Error = fmt.Sprintf("%s: %v", stage, cause)
		return result, stageError(stage, path, cause)
	}

	// Resolving
	start := time.Now()
	oldDoc, newDoc, err := ResolveInputs(req.Old, req.New)
	if err != nil {
		return fail(StateResolving, "", err)
	}
	manifest.Old, manifest.New = oldDoc.Path(), newDoc.Path()

	root := req.RepoRoot
	if root == "" {
		root = FindRepoRoot(newDoc.Dir())
	}
	if root, err = filepath.Abs(root); err != nil {
		return fail(StateResolving, req.RepoRoot, fmt.Errorf("%w: repository root: %v", ErrInputNotFound, err))
	}
	if !fileutil.DirExists(root) {
		return fail(StateResolving, root, fmt.Errorf("%w: repository root is not a directory", ErrInputNotFound))
	}
	result.RepoRoot = root
	manifest.RepoRoot = root

	target, err := ParseOutputTarget(req.Output, s.cfg.outputDir)
	if err != nil {
		return fail(StateResolving, req.Output, err)
	}
	manifest.Output = target.TexPath()

	rules := s.Rules(root)
	if err := rules.Validate(); err != nil {
		return fail(StateResolving, "", err)
	}

	ws, err := NewWorkspace(s.cfg.tempDir, req.KeepTemp)
	if err != nil {
		return fail(StateResolving, s.cfg.tempDir, err)
	}
	defer func() {
		if req.KeepTemp {
			result.Workspace = ws.Dir()
		}
		if closeErr := ws.Close(); closeErr != nil {
			logger.Warn("removing workspace", "err", closeErr)
		}
	}()
	defer func() {
		if req.KeepTemp {
			if mErr := manifest.write(ws); mErr != nil {
				logger.Warn("writing manifest", "err", mErr)
			}
		}
	}()
	manifest.record(StateResolving, start, nil)
	logger.Debug("resolved", "old", oldDoc, "new", newDoc, "root", root, "workspace", ws.Dir())

	// Diffing
	result.State = StateDiffing
	start = time.Now()
	differ := &Differ{
		Runner:   s.runner,
		Tool:     s.cfg.tools.Latexdiff,
		Type:     s.cfg.diffType,
		Encoding: s.cfg.encoding,
		Timeout:  s.cfg.timeouts.Diff,
		Logger:   logger,
	}
	diffStep, err := differ.Generate(ctx, oldDoc, newDoc, ws)
	manifest.record(StateDiffing, start, &diffStep)
	result.Warnings = append(result.Warnings, diffStep.Warnings...)
	if err != nil {
		return fail(StateDiffing, pathOrTool(err, s.cfg.tools.Latexdiff, newDoc.Path()), err)
	}

	// Rewriting
	result.State = StateRewriting
	start = time.Now()
	counts, err := rewriteFile(diffStep.OutputPath, rules)
	manifest.record(StateRewriting, start, nil)
	if err != nil {
		return fail(StateRewriting, diffStep.OutputPath, err)
	}
	result.Counts = counts
	manifest.Additions, manifest.Deletions = counts.Additions, counts.Deletions
	logger.Info("rewrote diff", "additions", counts.Additions, "deletions", counts.Deletions)

	// Compiling
	var pdfPath string
	if !req.NoPDF {
		result.State = StateCompiling
		start = time.Now()
		compiler := &Compiler{
			Runner:  s.runner,
			Tool:    s.cfg.tools.Latexmk,
			Timeout: s.cfg.timeouts.Compile,
			Strict:  s.cfg.strict,
			Logger:  logger,
		}
		compileStep, err := compiler.Compile(ctx, diffStep.OutputPath, root, ws)
		manifest.record(StateCompiling, start, &compileStep)
		result.Warnings = append(result.Warnings, compileStep.Warnings...)
		if err != nil {
			return fail(StateCompiling, pathOrTool(err, s.cfg.tools.Latexmk, diffStep.OutputPath), err)
		}
		pdfPath = compileStep.OutputPath
	}

	// Publishing. An interrupt during an earlier stage must not publish.
	if err := ctx.Err(); err != nil {
		return fail(StatePublishing, target.Dir, err)
	}
	result.State = StatePublishing
	start = time.Now()
	publisher := &Publisher{Logger: logger}
	arts, err := publisher.Publish(diffStep.OutputPath, pdfPath, target)
	manifest.record(StatePublishing, start, nil)
	result.Artifacts = arts
	if err != nil {
		return fail(StatePublishing, target.Dir, err)
	}

	result.State = StateDone
	manifest.State = StateDone.String()
	return result, nil
}

// pathOrTool names the tool for missing-executable errors and path otherwise.
func pathOrTool(err error, tool, path string) string {
	if errors.Is(err, ErrToolNotFound) {
		return tool
	}
	return path
}

func orDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
