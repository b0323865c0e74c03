package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for argument handling.
var (
	ErrUsage          = errors.New("invalid arguments")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// diffFlags holds flags for the diff command.
type diffFlags struct {
	common       commonFlags
	output       string
	repoRoot     string
	timeout      string
	diffType     string
	presentation string
	assetPath    string
	keepTemp     bool
	noPDF        bool
	strict       bool
}

// convertFlags holds flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	timeout string
}

// formatFlags holds flags for the format command.
type formatFlags struct {
	common  commonFlags
	timeout string
	check   bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addTimeoutFlag adds the per-tool timeout flag to a FlagSet.
func addTimeoutFlag(fs *flag.FlagSet, target *string) {
	fs.StringVarP(target, "timeout", "t", "", "per-tool timeout (e.g., 90s, 5m)")
}

// newDiffFlagSet registers diff flags on a fresh FlagSet.
// Shared by parsing and completion so both see the same flags.
func newDiffFlagSet(f *diffFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output name or path (default \"diff\")")
	fs.StringVar(&f.repoRoot, "repo-root", "", "repository root (default: nearest .git above NEW_DOC)")
	fs.StringVar(&f.diffType, "type", "", "latexdiff markup style (e.g., UNDERLINE, CFONT)")
	fs.StringVar(&f.presentation, "presentation", "", "presentation block name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.keepTemp, "keep-temp", false, "keep the workspace and print its path")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "skip compilation, publish the .tex only")
	fs.BoolVar(&f.strict, "strict", false, "fail when latexmk exits non-zero")
	addTimeoutFlag(fs, &f.timeout)
	addCommonFlags(fs, &f.common)
	return fs
}

func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output .tex path (default: input stem + .tex)")
	addTimeoutFlag(fs, &f.timeout)
	addCommonFlags(fs, &f.common)
	return fs
}

func newFormatFlagSet(f *formatFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.BoolVar(&f.check, "check", false, "report files that would change without writing")
	addTimeoutFlag(fs, &f.timeout)
	addCommonFlags(fs, &f.common)
	return fs
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseFlags parses args with fs. Flag errors print usage to w and are
// wrapped with ErrUsage; -h returns flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		// ContinueOnError leaves usage printing to the caller.
		usage(w)
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseDiffFlags(args []string, w io.Writer) (*diffFlags, []string, error) {
	f := &diffFlags{}
	rest, err := parseFlags(newDiffFlagSet(f), args, w, printDiffUsage)
	return f, rest, err
}

func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	rest, err := parseFlags(newConvertFlagSet(f), args, w, printConvertUsage)
	return f, rest, err
}

func parseFormatFlags(args []string, w io.Writer) (*formatFlags, []string, error) {
	f := &formatFlags{}
	rest, err := parseFlags(newFormatFlagSet(f), args, w, printFormatUsage)
	return f, rest, err
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	rest, err := parseFlags(newDoctorFlagSet(f), args, w, printDoctorUsage)
	return f, rest, err
}

// parseTimeout parses a --timeout value. Empty means unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}
