package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: styleguide [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build a style guide from stylesheets (default)")
	fmt.Fprintln(w, "  init        Write a starter config file")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'styleguide help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: styleguide build [flags] [source...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract /*** ... */ documentation blocks from stylesheets and render")
	fmt.Fprintln(w, "them into one HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source    Stylesheet path or glob (replaces config sources)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --title <s>             Document title")
	fmt.Fprintln(w, "      --group-by <key>        Metadata key to group by (default: section)")
	fmt.Fprintln(w, "      --sort-by <keys>        Comma-separated sort keys (default: section,title)")
	fmt.Fprintln(w, "      --no-sort               Keep records in source order")
	fmt.Fprintln(w, "      --engine <s>            Template engine: amber, html")
	fmt.Fprintln(w, "      --example-engine <s>    Example engine: amber, markdown, html")
	fmt.Fprintln(w, "      --include-key <key>     Metadata key naming a block as a fragment")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for example source")
	fmt.Fprintln(w, "      --date <s>              Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                              Presets: iso, european, us, long, timestamp")
	fmt.Fprintln(w, "                              Use [text] to escape literals: [Built] YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --template <s>          Template name or file path")
	fmt.Fprintln(w, "      --template-css <s>      Template stylesheet name or file path")
	fmt.Fprintln(w, "      --template-js <s>       Template script name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory")
	fmt.Fprintln(w, "      --extra-css <path>      Extra stylesheet to document (repeatable)")
	fmt.Fprintln(w, "      --extra-js <path>       Extra script to embed (repeatable)")
	fmt.Fprintln(w, "      --fragments <dir>       Directory of *.html include fragments")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Log pipeline steps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  STYLEGUIDE_CONFIG, STYLEGUIDE_OUTPUT, STYLEGUIDE_TEMPLATE,")
	fmt.Fprintln(w, "  STYLEGUIDE_ASSET_PATH, STYLEGUIDE_FRAGMENTS, STYLEGUIDE_DATE,")
	fmt.Fprintln(w, "  STYLEGUIDE_HIGHLIGHT_STYLE, STYLEGUIDE_WORKERS")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: styleguide init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter config file listing every setting.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>   File to write (default: styleguide.yaml)")
	fmt.Fprintln(w, "  -f, --force           Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: styleguide version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: styleguide help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
