package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	switch arg {
	case "diff", "convert", "format", "doctor", "completion", "version", "help":
		return true
	}
	return false
}

// runMain dispatches args (including the program name) and returns the exit
// code. Anything that is not a subcommand is treated as diff arguments, so
// `texdiff OLD_DOC NEW_DOC` works.
func runMain(args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && cmd != "-h" && cmd != "--help" {
		cmd, rest = "diff", args[1:]
	}

	var err error
	switch cmd {
	case "diff":
		err = runDiff(ctx, rest, env)
	case "convert":
		err = runConvert(ctx, rest, env)
	case "format":
		err = runFormat(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "texdiff %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(env.Stderr, "interrupted")
		} else {
			fmt.Fprintln(env.Stderr, err)
		}
	}
	return exitCodeFor(err)
}
