// Package process runs external tools as subprocesses.
//
// Every command carries an explicit working directory and an optional
// deadline. When the deadline passes or the caller's context is canceled,
// the whole process group is killed, so tools that fork helpers (latexmk
// spawning pdflatex, for example) do not outlive the run.
//
// A non-zero exit status is not an error at this layer: it is reported in
// Result.ExitCode and callers decide whether it matters.
package process
