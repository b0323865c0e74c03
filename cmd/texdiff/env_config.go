package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff/internal/config"
)

// Environment variable names.
const (
	envConfig      = "TEXDIFF_CONFIG"
	envRepoRoot    = "TEXDIFF_REPO_ROOT"
	envOutputDir   = "TEXDIFF_OUTPUT_DIR"
	envTimeout     = "TEXDIFF_TIMEOUT"
	envLatexdiff   = "TEXDIFF_LATEXDIFF"
	envLatexmk     = "TEXDIFF_LATEXMK"
	envPandoc      = "TEXDIFF_PANDOC"
	envLatexindent = "TEXDIFF_LATEXINDENT"
)

// envSettings holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envSettings struct {
	ConfigPath  string
	RepoRoot    string
	OutputDir   string
	Timeout     time.Duration // applies to every tool
	Latexdiff   string
	Latexmk     string
	Pandoc      string
	Latexindent string
}

// knownEnvVars lists valid TEXDIFF_* variables, used to catch typos.
var knownEnvVars = map[string]bool{
	envConfig:      true,
	envRepoRoot:    true,
	envOutputDir:   true,
	envTimeout:     true,
	envLatexdiff:   true,
	envLatexmk:     true,
	envPandoc:      true,
	envLatexindent: true,
}

// toolEnvVars maps each config tool key to the variable overriding it.
var toolEnvVars = map[string]string{
	"latexdiff":   envLatexdiff,
	"latexmk":     envLatexmk,
	"pandoc":      envPandoc,
	"latexindent": envLatexindent,
}

// loadEnvSettings reads every recognized TEXDIFF_* variable.
// An unparsable or non-positive TEXDIFF_TIMEOUT is ignored.
func loadEnvSettings() *envSettings {
	s := &envSettings{
		ConfigPath:  os.Getenv(envConfig),
		RepoRoot:    os.Getenv(envRepoRoot),
		OutputDir:   os.Getenv(envOutputDir),
		Latexdiff:   os.Getenv(envLatexdiff),
		Latexmk:     os.Getenv(envLatexmk),
		Pandoc:      os.Getenv(envPandoc),
		Latexindent: os.Getenv(envLatexindent),
	}

	if v := os.Getenv(envTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.Timeout = d
		}
	}

	return s
}

// warnUnknownEnvVars warns about unrecognized TEXDIFF_* variables,
// e.g. TEXDIFF_LATEXDIF.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "TEXDIFF_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.NewWithOptions(w, log.Options{Prefix: "texdiff"}).
				Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvSettings overlays set variables on cfg.
// Precedence is flags > environment > config file > defaults; flags are
// applied afterwards by each command.
func applyEnvSettings(env *envSettings, cfg *config.Config) {
	if env.RepoRoot != "" {
		cfg.RepoRoot = env.RepoRoot
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.Timeouts = config.TimeoutsConfig{Diff: env.Timeout, Compile: env.Timeout, Tool: env.Timeout}
	}
	if env.Latexdiff != "" {
		cfg.Tools.Latexdiff = env.Latexdiff
	}
	if env.Latexmk != "" {
		cfg.Tools.Latexmk = env.Latexmk
	}
	if env.Pandoc != "" {
		cfg.Tools.Pandoc = env.Pandoc
	}
	if env.Latexindent != "" {
		cfg.Tools.Latexindent = env.Latexindent
	}
}
