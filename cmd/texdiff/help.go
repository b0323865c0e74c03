package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff [diff] OLD_DOC NEW_DOC [flags]")
	fmt.Fprintln(w, "       texdiff <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  diff        Diff two LaTeX documents (default)")
	fmt.Fprintln(w, "  convert     Convert a .docx file to LaTeX with pandoc")
	fmt.Fprintln(w, "  format      Indent LaTeX files with latexindent")
	fmt.Fprintln(w, "  doctor      Check external tools and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'texdiff help <command>' for details on a specific command.")
}

// printDiffUsage prints usage for the diff command.
func printDiffUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff [diff] OLD_DOC NEW_DOC [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Produce a change-marked LaTeX document and PDF from two revisions.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  OLD_DOC    Earlier revision (.tex)")
	fmt.Fprintln(w, "  NEW_DOC    Later revision (.tex); its directory is latexdiff's working directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <name>       Output name or path (default \"diff\")")
	fmt.Fprintln(w, "                            Writes <name>.tex and, unless --no-pdf, <name>.pdf")
	fmt.Fprintln(w, "      --no-pdf              Skip compilation")
	fmt.Fprintln(w, "      --keep-temp           Keep the workspace (logs, run.yaml) and print its path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --repo-root <dir>     Repository root (default: nearest .git above NEW_DOC)")
	fmt.Fprintln(w, "      --type <style>        latexdiff markup style (default UNDERLINE)")
	fmt.Fprintln(w, "      --presentation <name> Presentation block: default, monochrome")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with presentations/<name>.tex overrides")
	fmt.Fprintln(w, "      --strict              Fail when latexmk exits non-zero")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-tool timeout (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff convert INPUT.docx [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a word-processor document to standalone LaTeX with pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .tex path (default: input stem + .tex)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       pandoc timeout")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printFormatUsage prints usage for the format command.
func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff format FILE.tex... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Indent LaTeX files in place with latexindent, one at a time.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --check               List files that would change; exit 1 if any")
	fmt.Fprintln(w, "  -t, --timeout <dur>       latexindent timeout per file")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check latexdiff, latexmk, pandoc, latexindent and the temp directory.")
	fmt.Fprintln(w, "Exits 1 only when latexdiff is missing or the temp directory is not writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEXDIFF_CONFIG, TEXDIFF_REPO_ROOT, TEXDIFF_OUTPUT_DIR, TEXDIFF_TIMEOUT,")
	fmt.Fprintln(w, "  TEXDIFF_LATEXDIFF, TEXDIFF_LATEXMK, TEXDIFF_PANDOC, TEXDIFF_LATEXINDENT")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "diff":
		printDiffUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "format":
		printFormatUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: texdiff version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: texdiff help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
