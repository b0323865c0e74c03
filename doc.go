// Package texdiff produces colorized LaTeX diffs of governance documents.
//
// # Quick Start
//
// Create a service and diff two revisions of a document:
//
//	svc, err := texdiff.NewService()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := svc.Diff(ctx, texdiff.Request{
//	    Old:    "bylaws/v1/bylaws.tex",
//	    New:    "bylaws/v2/bylaws.tex",
//	    Output: "out/bylaws-diff",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Artifacts.Source, res.Artifacts.PDF)
//
// # Diff Pipeline
//
// A run moves through these stages, each consuming the previous one's file:
//
//  1. Resolving: both inputs must be existing .tex files; paths become absolute
//  2. Diffing: latexdiff --flatten writes diff.tex into a private workspace
//  3. Rewriting: float markup commands are normalized, the presentation
//     block is injected before \begin{document}, and ../../shared
//     references become absolute
//  4. Compiling (optional): latexmk builds the PDF from the repository root
//  5. Publishing: <name>.tex and <name>.pdf are copied to the output directory
//
// Tool exit codes are advisory. latexdiff and latexmk routinely exit non-zero
// on benign warnings; a stage fails only when its output file is missing.
// WithStrictCompile makes a non-zero latexmk exit fatal.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := texdiff.NewService(
//	    texdiff.WithLogger(logger),
//	    texdiff.WithTimeouts(texdiff.Timeouts{Compile: 10 * time.Minute}),
//	    texdiff.WithTools(texdiff.Tools{Latexmk: "/opt/texlive/bin/latexmk"}),
//	)
//
// # Errors
//
// Failures are *PipelineError values naming the stage and path. They wrap
// the sentinels (ErrInputNotFound, ErrInvalidExtension,
// ErrDiffGenerationFailed, ErrMarkerNotFound, ErrCompilationFailed, ...) for
// use with errors.Is.
//
// # Other Commands
//
// Convert wraps pandoc for .docx to .tex conversion and Format wraps
// latexindent. Both share the service's runner, tools and timeouts.
package texdiff
