// Package assets provides the LaTeX presentation blocks injected into diff output.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - presentations compiled into the binary
//	    ├── FilesystemLoader  - presentations from a custom directory
//	    └── Resolver          - custom first, embedded fallback
//
// A presentation is a named .tex fragment redefining \DIFadd and \DIFdel.
// Built-in presentations are "default" (colored additions, colored and struck
// out deletions) and "monochrome" (underlined additions, struck out deletions).
//
// # Directory Structure
//
//	{basePath}/
//	└── presentations/
//	    └── {name}.tex
//
// # Placeholders
//
// Presentations may reference @ADDITION_COLOR@ and @DELETION_COLOR@. Render
// substitutes them with validated xcolor expressions. Plain substitution is
// used because LaTeX braces collide with text/template delimiters.
package assets
