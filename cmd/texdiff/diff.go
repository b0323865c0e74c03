package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/config"
	"github.com/cfes-fceg/texdiff/internal/hints"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// runDiff handles `texdiff [diff] OLD_DOC NEW_DOC`.
func runDiff(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseDiffFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		printDiffUsage(env.Stderr)
		return fmt.Errorf("%w: diff needs OLD_DOC and NEW_DOC, got %d argument(s)", ErrUsage, len(positional))
	}

	cfg, err := loadSettings(flags.common.config)
	if err != nil {
		return err
	}
	if err := mergeDiffFlags(flags, cfg); err != nil {
		return err
	}

	presentation, err := renderPresentation(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	svc, err := newService(cfg, env, logger, texdiff.WithPresentation(presentation))
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := svc.Diff(ctx, texdiff.Request{
		Old:      positional[0],
		New:      positional[1],
		Output:   flags.output,
		RepoRoot: cfg.RepoRoot,
		NoPDF:    flags.noPDF,
		KeepTemp: flags.keepTemp,
	})
	logDuration(logger, "diff finished", start)

	if res != nil && res.Workspace != "" {
		logger.Info("kept workspace", "path", res.Workspace)
	}
	if err != nil {
		return withDiffHint(err, cfg, res)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.Artifacts.Source)
		if res.Artifacts.PDF != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", res.Artifacts.PDF)
		}
		if res.Workspace != "" {
			fmt.Fprintf(env.Stdout, "Workspace %s\n", res.Workspace)
		}
	}
	return nil
}

// mergeDiffFlags applies explicitly set flags over cfg and revalidates it.
func mergeDiffFlags(flags *diffFlags, cfg *config.Config) error {
	if flags.repoRoot != "" {
		cfg.RepoRoot = flags.repoRoot
	}
	if flags.diffType != "" {
		cfg.Diff.Type = flags.diffType
	}
	if flags.presentation != "" {
		cfg.Rewrite.Presentation = flags.presentation
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.strict {
		cfg.Compile.Strict = true
	}
	if err := applyTimeout(cfg, flags.timeout); err != nil {
		return err
	}
	return cfg.Validate()
}

// withDiffHint appends the hint matching a failed run.
func withDiffHint(err error, cfg *config.Config, res *texdiff.Result) error {
	workspace := ""
	if res != nil {
		workspace = res.Workspace
	}

	var hint string
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, texdiff.ErrToolNotFound):
		var pe *texdiff.PipelineError
		key := "latexdiff"
		if errors.As(err, &pe) && pe.Stage == texdiff.StateCompiling {
			key = "latexmk"
		}
		hint = hints.ForToolNotFound(toolPath(cfg, key), toolEnvVars[key])
	case errors.Is(err, process.ErrTimeout):
		hint = hints.ForTimeout()
	case errors.Is(err, texdiff.ErrMarkerNotFound):
		hint = hints.ForMarkerNotFound(cfg.Rewrite.Marker)
	case errors.Is(err, texdiff.ErrDiffGenerationFailed):
		hint = hints.ForDiffFailed(workspace)
	case errors.Is(err, texdiff.ErrCompilationFailed):
		hint = hints.ForCompilationFailed(workspace)
	case errors.Is(err, texdiff.ErrPublishFailed):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// toolPath returns the configured executable for a tool key.
func toolPath(cfg *config.Config, key string) string {
	switch key {
	case "latexmk":
		return cfg.Tools.Latexmk
	case "pandoc":
		return cfg.Tools.Pandoc
	case "latexindent":
		return cfg.Tools.Latexindent
	default:
		return cfg.Tools.Latexdiff
	}
}
