package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/hints"
	"github.com/cfes-fceg/texdiff/internal/process"
)

// runConvert handles `texdiff convert INPUT.docx [-o OUTPUT.tex]`.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printConvertUsage(env.Stderr)
		return fmt.Errorf("%w: convert needs exactly one INPUT.docx", ErrUsage)
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

	out, err := svc.Convert(ctx, texdiff.ConvertRequest{Input: positional[0], Output: flags.output})
	if err != nil {
		switch {
		case errors.Is(err, texdiff.ErrToolNotFound):
			return fmt.Errorf("%w%s", err, hints.ForToolNotFound(cfg.Tools.Pandoc, envPandoc))
		case errors.Is(err, process.ErrTimeout):
			return fmt.Errorf("%w%s", err, hints.ForTimeout())
		}
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}
