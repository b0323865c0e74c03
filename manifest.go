package texdiff

import (
	"time"

	"github.com/cfes-fceg/texdiff/internal/yamlutil"
)

// Manifest records a run in run.yaml inside its workspace.
type Manifest struct {
	RunID     string        `yaml:"runId"`
	Old       string        `yaml:"old"`
	New       string        `yaml:"new"`
	RepoRoot  string        `yaml:"repoRoot,omitempty"`
	Output    string        `yaml:"output,omitempty"`
	State     string        `yaml:"state"`
	Error     string        `yaml:"error,omitempty"`
	Additions int           `yaml:"additions"`
	Deletions int           `yaml:"deletions"`
	Stages    []StageRecord `yaml:"stages"`
}

// StageRecord is one manifest entry per pipeline stage reached.
type StageRecord struct {
	Stage    string        `yaml:"stage"`
	Duration time.Duration `yaml:"duration"`
	ExitCode *int          `yaml:"exitCode,omitempty"`
	Output   string        `yaml:"output,omitempty"`
	Warnings []string      `yaml:"warnings,omitempty"`
}

// record appends a stage entry. Steps without a tool pass a nil result.
func (m *Manifest) record(stage State, start time.Time, step *StepResult) {
	rec := StageRecord{Stage: stage.String(), Duration: time.Since(start).Round(time.Millisecond)}
	if step != nil {
		code := step.ExitCode
		rec.ExitCode = &code
		rec.Output = step.OutputPath
		rec.Warnings = step.Warnings
	}
	m.Stages = append(m.Stages, rec)
}

// write saves the manifest into the workspace.
func (m *Manifest) write(ws *Workspace) error {
	return yamlutil.WriteFile(ws.Path(ManifestFile), m, 0o644)
}

// ReadManifest loads a run.yaml written by a retained workspace.
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := yamlutil.ReadFile(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
