package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
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
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion hints the FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine":         {Values: []string{"amber", "html"}},
	"example-engine": {Values: []string{"amber", "markdown", "html"}},

	"config":       {FileGlob: "*.yaml,*.yml"},
	"output":       {FileGlob: "*.html"},
	"template":     {FileGlob: "*.amber,*.html"},
	"template-css": {FileGlob: "*.css"},
	"template-js":  {FileGlob: "*.js"},
	"extra-css":    {FileGlob: "*.css"},
	"extra-js":     {FileGlob: "*.js"},

	"asset-path": {IsDir: true},
	"fragments":  {IsDir: true},
}

// extractFlagsFromFlagSet converts registered flags into completion definitions.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
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
func getCommands() []commandDef {
	return []commandDef{
		{Name: "build", Desc: "Build a style guide from stylesheets", Flags: extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}))},
		{Name: "init", Desc: "Write a starter config file"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
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

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: styleguide completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(styleguide completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(styleguide completion zsh)\"    # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  styleguide completion fish > ~/.config/fish/completions/styleguide.fish")
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	build := cmds[0]

	var b strings.Builder
	b.WriteString("# bash completion for styleguide\n")
	b.WriteString("_styleguide() {\n")
	b.WriteString("  local cur prev\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  case \"$prev\" in\n")
	for _, f := range build.Flags {
		var action string
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
		case flagDir:
			action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
		case flagFile:
			action = "COMPREPLY=($(compgen -f -- \"$cur\"))"
		default:
			continue
		}
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		fmt.Fprintf(&b, "    %s) %s; return ;;\n", pattern, action)
	}
	b.WriteString("    completion) COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\")); return ;;\n")
	b.WriteString("  esac\n")

	var longs []string
	for _, f := range build.Flags {
		longs = append(longs, "--"+f.Long)
	}
	b.WriteString("  if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(longs, " "))
	b.WriteString("  elif [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.css' -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("  else\n")
	b.WriteString("    COMPREPLY=($(compgen -f -X '!*.css' -- \"$cur\"))\n")
	b.WriteString("  fi\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _styleguide styleguide\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("#compdef styleguide\n\n")
	b.WriteString("_styleguide() {\n")
	b.WriteString("  local -a commands\n")
	b.WriteString("  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n")
	b.WriteString("  _arguments -s \\\n")
	for _, f := range cmds[0].Flags {
		opt := "--" + f.Long
		if f.Short != "" {
			opt = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'", f.Short, f.Long, f.Short, f.Long)
		}
		fmt.Fprintf(&b, "    '%s[%s]%s' \\\n", opt, zshEscape(f.Desc), zshAction(f))
	}
	b.WriteString("    '1: :{_describe command commands; _files -g \"*.css\"}' \\\n")
	b.WriteString("    '*:stylesheet:_files -g \"*.css\"'\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _styleguide styleguide\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", "|")
		return ":file:_files -g \"(" + globs + ")\""
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	s = strings.ReplaceAll(s, "]", `\]`)
	return strings.ReplaceAll(s, ":", `\:`)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("# fish completion for styleguide\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c styleguide -n __fish_use_subcommand -f -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("complete -c styleguide -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish'\n")
	for _, f := range cmds[0].Flags {
		line := "complete -c styleguide -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch f.Type {
		case flagEnum:
			line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagFile:
			line += " -r -F"
		case flagString, flagInt:
			line += " -x"
		}
		line += " -d " + fishQuote(f.Desc)
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
