package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/hints"
)

// ErrNeedsFormatting is returned by `format --check` when a file would change.
var ErrNeedsFormatting = errors.New("files need formatting")

// runFormat handles `texdiff format FILE.tex... [--check]`.
func runFormat(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFormatFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		printFormatUsage(env.Stderr)
		return fmt.Errorf("%w: format needs at least one FILE.tex", ErrUsage)
	}

	cfg, err := loadSettings(flags.common.config)
	if err != nil {
		return err
	}
	if err := applyTimeout(cfg, flags.timeout); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	svc, err := newService(cfg, env, logger)
	if err != nil {
		return err
	}

	results, err := svc.Format(ctx, positional, flags.check)

	changed := 0
	for _, r := range results {
		if !r.Changed {
			logger.Debug("already formatted", "path", r.Path)
			continue
		}
		changed++
		if flags.common.quiet {
			continue
		}
		if flags.check {
			fmt.Fprintf(env.Stdout, "Would reformat %s\n", r.Path)
		} else {
			fmt.Fprintf(env.Stdout, "Formatted %s\n", r.Path)
		}
	}

	if err != nil {
		if errors.Is(err, texdiff.ErrToolNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForToolNotFound(cfg.Tools.Latexindent, envLatexindent))
		}
		return err
	}
	if flags.check && changed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrNeedsFormatting, changed, len(results))
	}
	return nil
}
