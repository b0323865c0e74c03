// Package pipeline implements the LaTeX rewrite passes applied to latexdiff output.
//
// The passes run in a fixed order, each a pure function from text to text:
//   - command normalization (variant markup commands renamed to one canonical pair)
//   - presentation injection (color and strikethrough rules placed before the
//     end-of-preamble marker)
//   - resource path rewriting (two-levels-up shared references made absolute)
//
// Later passes rely on the output shape of earlier ones. Rules.Apply is the
// only entry point that runs them together and it never reorders them.
//
// Running latexdiff and latexmk is handled by the root texdiff package; this
// package never touches the filesystem.
package pipeline
