package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/cfes-fceg/texdiff/internal/assets"
	"github.com/cfes-fceg/texdiff/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values, e.g. shells
	FilePattern string   // glob for file arguments (e.g., "*.tex")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"type":         {Values: config.DiffTypes},
	"presentation": {Values: assets.NewEmbeddedLoader().Names()},
	"config":       {FileGlob: "*.yaml,*.yml"},
	"output":       {FileGlob: "*.tex"},
	"repo-root":    {IsDir: true},
	"asset-path":   {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "diff",
			Desc:        "Diff two LaTeX documents",
			Flags:       extractFlagsFromFlagSet(newDiffFlagSet(&diffFlags{})),
			FilePattern: "*.tex",
		},
		{
			Name:        "convert",
			Desc:        "Convert a .docx file to LaTeX",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			FilePattern: "*.docx",
		},
		{
			Name:        "format",
			Desc:        "Indent LaTeX files with latexindent",
			Flags:       extractFlagsFromFlagSet(newFormatFlagSet(&formatFlags{})),
			FilePattern: "*.tex",
		},
		{
			Name:  "doctor",
			Desc:  "Check external tools and environment",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns every spelling of the flags, e.g. "-o --output".
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

// globExt turns "*.yaml,*.yml" into "yaml|yml" for bash and zsh patterns.
func globExt(glob string) string {
	parts := strings.Split(glob, ",")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(strings.TrimSpace(p), "*.")
	}
	return strings.Join(parts, "|")
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for texdiff\n")
	b.WriteString("_texdiff() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 && ${cur} != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -X '!*.tex' -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	b.WriteString("        diff|convert|format|doctor|completion|version|help) ;;\n")
	b.WriteString("        *) cmd=diff ;;\n")
	b.WriteString("    esac\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range c.Flags {
				pat := "--" + f.Long
				if f.Short != "" {
					pat = "-" + f.Short + "|" + pat
				}
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;\n", pat, strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\")); return ;;\n", pat, globExt(f.FileGlob))
				case flagDir:
					fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -d -- \"${cur}\")); return ;;\n", pat)
				case flagString:
					fmt.Fprintf(&b, "            %s) return ;;\n", pat)
				}
			}
			b.WriteString("        esac\n")
			fmt.Fprintf(&b, "        if [[ ${cur} == -* ]]; then COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return; fi\n", flagWords(c.Flags))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", globExt(c.FilePattern))
		case c.Name == "help":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _texdiff texdiff\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters special inside a zsh _arguments spec.
func zshEscape(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`, ":", `\:`, "'", `'\''`).Replace(s)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef texdiff\n\n")
	b.WriteString("_texdiff() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g '*.tex'\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=${words[2]}\n")
	b.WriteString("    case $cmd in\n")
	b.WriteString("        diff|convert|format|doctor|completion|version|help) shift words; (( CURRENT-- )) ;;\n")
	b.WriteString("        *) cmd=diff ;;\n")
	b.WriteString("    esac\n\n")
	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s \\\n")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case flagFile:
				action = ":file:_files -g '*.(" + globExt(f.FileGlob) + ")'"
			case flagDir:
				action = ":directory:_files -/"
			case flagString:
				action = ":value:"
			}
			desc := zshEscape(f.Desc)
			if f.Short != "" {
				fmt.Fprintf(&b, "            '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            '1:shell:(%s)'\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "            '*:file:_files -g \"%s\"'\n", c.FilePattern)
		case c.Name == "help":
			fmt.Fprintf(&b, "            '1:command:(%s)'\n", commandNames(cmds))
		default:
			b.WriteString("            \n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_texdiff \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes single quotes for fish strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for texdiff\n")
	fmt.Fprintf(&b, "set -l texdiff_commands %s\n\n", commandNames(cmds))

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c texdiff -n \"not __fish_seen_subcommand_from $texdiff_commands\" -f -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c texdiff -n \"not __fish_seen_subcommand_from $texdiff_commands\" -k -a \"(__fish_complete_suffix .tex)\"\n\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		if c.Name == "diff" {
			cond = "not __fish_seen_subcommand_from convert format doctor completion version help"
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c texdiff -n \"%s\" -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagString:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c texdiff -n \"%s\" -f -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "complete -c texdiff -n \"%s\" -k -a \"(__fish_complete_suffix %s)\"\n", cond, strings.TrimPrefix(c.FilePattern, "*"))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texdiff completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(texdiff completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(texdiff completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    texdiff completion fish > ~/.config/fish/completions/texdiff.fish")
}
