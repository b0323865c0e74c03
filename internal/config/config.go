package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/fileutil"
	"github.com/cfes-fceg/texdiff/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppName names the per-user config directory.
const AppName = "texdiff"

// Default values.
const (
	DefaultDiffType       = "UNDERLINE"
	DefaultEncoding       = "utf8"
	DefaultMarker         = `\begin{document}`
	DefaultSharedDir      = "shared"
	DefaultPresentation   = "default"
	DefaultAdditionColor  = "blue"
	DefaultDeletionColor  = "red"
	DefaultDiffTimeout    = 2 * time.Minute
	DefaultCompileTimeout = 5 * time.Minute
	DefaultToolTimeout    = time.Minute
)

// DiffTypes lists the markup styles latexdiff accepts for --type.
var DiffTypes = []string{
	"UNDERLINE", "CTRADITIONAL", "TRADITIONAL", "CFONT", "FONTSTRIKE",
	"INVISIBLE", "CHANGEBAR", "CCHANGEBAR", "CULINECHBAR", "CFONTCHBAR",
	"BOLD", "PDFCOMMENT", "LUNDERLINE",
}

// Config holds all configuration for a texdiff run.
type Config struct {
	RepoRoot string         `yaml:"repoRoot"` // Empty = auto-detect from NEW_DOC
	Output   OutputConfig   `yaml:"output"`
	Tools    ToolsConfig    `yaml:"tools"`
	Diff     DiffConfig     `yaml:"diff"`
	Rewrite  RewriteConfig  `yaml:"rewrite"`
	Assets   AssetsConfig   `yaml:"assets"`
	Compile  CompileConfig  `yaml:"compile"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = current directory
}

// ToolsConfig names the external executables. Bare names are looked up on PATH.
type ToolsConfig struct {
	Latexdiff   string `yaml:"latexdiff"`
	Latexmk     string `yaml:"latexmk"`
	Pandoc      string `yaml:"pandoc"`
	Latexindent string `yaml:"latexindent"`
}

// DiffConfig defines latexdiff options.
type DiffConfig struct {
	Type     string `yaml:"type"`     // --type markup style
	Encoding string `yaml:"encoding"` // --encoding
}

// RewriteConfig defines the post-processing applied to latexdiff output.
type RewriteConfig struct {
	Marker        string `yaml:"marker"`        // End-of-preamble line
	SharedDir     string `yaml:"sharedDir"`     // Directory name under the repo root
	Presentation  string `yaml:"presentation"`  // Presentation name in internal/assets/presentations/
	AdditionColor string `yaml:"additionColor"` // xcolor expression
	DeletionColor string `yaml:"deletionColor"` // xcolor expression
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// CompileConfig defines latexmk options.
type CompileConfig struct {
	Strict bool `yaml:"strict"` // Fail on non-zero exit even when a PDF was produced
}

// TimeoutsConfig bounds each external tool invocation.
type TimeoutsConfig struct {
	Diff    time.Duration `yaml:"diff"`
	Compile time.Duration `yaml:"compile"`
	Tool    time.Duration `yaml:"tool"` // pandoc, latexindent, doctor probes
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Latexdiff:   "latexdiff",
			Latexmk:     "latexmk",
			Pandoc:      "pandoc",
			Latexindent: "latexindent",
		},
		Diff: DiffConfig{
			Type:     DefaultDiffType,
			Encoding: DefaultEncoding,
		},
		Rewrite: RewriteConfig{
			Marker:        DefaultMarker,
			SharedDir:     DefaultSharedDir,
			Presentation:  DefaultPresentation,
			AdditionColor: DefaultAdditionColor,
			DeletionColor: DefaultDeletionColor,
		},
		Timeouts: TimeoutsConfig{
			Diff:    DefaultDiffTimeout,
			Compile: DefaultCompileTimeout,
			Tool:    DefaultToolTimeout,
		},
	}
}

// Validate checks value constraints.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	if err := validateTool("tools.latexdiff", c.Tools.Latexdiff); err != nil {
		return err
	}
	if err := validateTool("tools.latexmk", c.Tools.Latexmk); err != nil {
		return err
	}
	if err := validateTool("tools.pandoc", c.Tools.Pandoc); err != nil {
		return err
	}
	if err := validateTool("tools.latexindent", c.Tools.Latexindent); err != nil {
		return err
	}

	if !isDiffType(c.Diff.Type) {
		return fmt.Errorf("%w: diff.type: %q is not a latexdiff markup style (one of %s)",
			ErrInvalidConfig, c.Diff.Type, strings.Join(DiffTypes, ", "))
	}
	if c.Diff.Encoding == "" || strings.ContainsAny(c.Diff.Encoding, " \t=") {
		return fmt.Errorf("%w: diff.encoding: invalid value %q", ErrInvalidConfig, c.Diff.Encoding)
	}

	if strings.TrimSpace(c.Rewrite.Marker) == "" {
		return fmt.Errorf("%w: rewrite.marker: required", ErrInvalidConfig)
	}
	if c.Rewrite.SharedDir == "" || strings.ContainsAny(c.Rewrite.SharedDir, `/\`) ||
		c.Rewrite.SharedDir == "." || c.Rewrite.SharedDir == ".." {
		return fmt.Errorf("%w: rewrite.sharedDir: must be a single directory name, got %q", ErrInvalidConfig, c.Rewrite.SharedDir)
	}
	if err := assets.ValidateAssetName(c.Rewrite.Presentation); err != nil {
		return fmt.Errorf("%w: rewrite.presentation: %v", ErrInvalidConfig, err)
	}
	if err := assets.ValidateColor(c.Rewrite.AdditionColor); err != nil {
		return fmt.Errorf("%w: rewrite.additionColor: %v", ErrInvalidConfig, err)
	}
	if err := assets.ValidateColor(c.Rewrite.DeletionColor); err != nil {
		return fmt.Errorf("%w: rewrite.deletionColor: %v", ErrInvalidConfig, err)
	}

	if err := validateTimeout("timeouts.diff", c.Timeouts.Diff); err != nil {
		return err
	}
	if err := validateTimeout("timeouts.compile", c.Timeouts.Compile); err != nil {
		return err
	}
	return validateTimeout("timeouts.tool", c.Timeouts.Tool)
}

func validateTool(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s: required", ErrInvalidConfig, field)
	}
	return nil
}

func validateTimeout(field string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidConfig, field, d)
	}
	return nil
}

func isDiffType(t string) bool {
	for _, known := range DiffTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/texdiff/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
