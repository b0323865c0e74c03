package texdiff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/cfes-fceg/texdiff/internal/fileutil"
)

// Permissions for published output.
const (
	outputDirPerm  = 0o750
	outputFilePerm = 0o644
)

// ParseOutputTarget turns an --output value into a target.
// A directory part becomes the target directory and a trailing .tex or .pdf
// is dropped from the name. Relative directories resolve against baseDir
// (the working directory when empty). An empty name or one ending in a
// separator uses DefaultOutputName.
func ParseOutputTarget(name, baseDir string) (OutputTarget, error) {
	dir, base := filepath.Split(name)
	base = fileutil.TrimExtension(base, TexExt, PDFExt)
	if base == "" {
		base = DefaultOutputName
	}
	if base == "." || base == ".." {
		return OutputTarget{}, fmt.Errorf("%w: %q", ErrInvalidOutput, name)
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return OutputTarget{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return OutputTarget{Dir: abs, Name: base}, nil
}

// Publisher copies run artifacts to their output target.
type Publisher struct {
	Logger *log.Logger
}

// Publish copies src to <dir>/<name>.tex and, when pdf is set, pdf to
// <dir>/<name>.pdf. The directory is created if needed. Existing files are
// replaced, since the name was given explicitly, and each replacement is
// logged as a warning.
func (p *Publisher) Publish(src, pdf string, target OutputTarget) (Artifacts, error) {
	logger := orDiscard(p.Logger)

	if err := os.MkdirAll(target.Dir, outputDirPerm); err != nil {
		return Artifacts{}, fmt.Errorf("%w: creating %s: %v", ErrPublishFailed, target.Dir, err)
	}

	var arts Artifacts
	if err := p.copy(logger, src, target.TexPath()); err != nil {
		return Artifacts{}, err
	}
	arts.Source = target.TexPath()

	if pdf != "" {
		if err := p.copy(logger, pdf, target.PDFPath()); err != nil {
			return arts, err
		}
		arts.PDF = target.PDFPath()
	}

	return arts, nil
}

func (p *Publisher) copy(logger *log.Logger, src, dst string) error {
	if fileutil.FileExists(dst) {
		logger.Warn("overwriting existing file", "path", dst)
	}
	if err := fileutil.CopyFile(src, dst, outputFilePerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublishFailed, dst, err)
	}
	return nil
}
