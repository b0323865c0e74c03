package main

import (
	"io"
	"os"

	"github.com/cfes-fceg/texdiff/internal/process"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Runner   process.Runner                    // nil = real subprocesses
	LookPath func(name string) (string, bool) // doctor tool discovery
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: process.LookPath,
	}
}

func (e *Environment) lookPath(name string) (string, bool) {
	if e.LookPath == nil {
		return process.LookPath(name)
	}
	return e.LookPath(name)
}
