package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff"
	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/config"
	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/hints"
)

// loadSettings loads the config named by -c (or TEXDIFF_CONFIG) and overlays
// the environment. Without either, defaults apply.
func loadSettings(name string) (*config.Config, error) {
	env := loadEnvSettings()
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvSettings(env, cfg)
	return cfg, nil
}

// configSearchPaths lists where a config name is looked up, for hints.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.AppName, name+".yaml"))
	}
	return paths
}

// applyTimeout overrides every tool timeout with a --timeout value.
func applyTimeout(cfg *config.Config, flagValue string) error {
	d, err := parseTimeout(flagValue)
	if err != nil {
		return err
	}
	if d > 0 {
		cfg.Timeouts = config.TimeoutsConfig{Diff: d, Compile: d, Tool: d}
	}
	return nil
}

// renderPresentation loads the configured presentation and fills in its colors.
func renderPresentation(cfg *config.Config) (string, error) {
	resolver, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", err
	}

	tmpl, err := resolver.LoadPresentation(cfg.Rewrite.Presentation)
	if err != nil {
		if errors.Is(err, assets.ErrPresentationNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForPresentationNotFound(assets.NewEmbeddedLoader().Names()))
		}
		return "", err
	}

	return assets.Render(tmpl, assets.Colors{
		Addition: cfg.Rewrite.AdditionColor,
		Deletion: cfg.Rewrite.DeletionColor,
	})
}

// newService builds a Service from the merged configuration.
func newService(cfg *config.Config, env *Environment, logger *log.Logger, extra ...texdiff.Option) (*texdiff.Service, error) {
	opts := []texdiff.Option{
		texdiff.WithLogger(logger),
		texdiff.WithRunner(env.Runner),
		texdiff.WithTools(texdiff.Tools{
			Latexdiff:   cfg.Tools.Latexdiff,
			Latexmk:     cfg.Tools.Latexmk,
			Pandoc:      cfg.Tools.Pandoc,
			Latexindent: cfg.Tools.Latexindent,
		}),
		texdiff.WithTimeouts(texdiff.Timeouts{
			Diff:    cfg.Timeouts.Diff,
			Compile: cfg.Timeouts.Compile,
			Tool:    cfg.Timeouts.Tool,
		}),
		texdiff.WithDiffType(cfg.Diff.Type),
		texdiff.WithEncoding(cfg.Diff.Encoding),
		texdiff.WithMarker(cfg.Rewrite.Marker),
		texdiff.WithSharedDir(cfg.Rewrite.SharedDir),
		texdiff.WithStrictCompile(cfg.Compile.Strict),
		texdiff.WithOutputDir(cfg.Output.DefaultDir),
	}
	return texdiff.NewService(append(opts, extra...)...)
}

// logDuration logs how long a command took at debug level.
func logDuration(logger *log.Logger, what string, start time.Time) {
	logger.Debug(what, "elapsed", time.Since(start).Round(time.Millisecond))
}
