package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parsing failures.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags shaping how records are rendered and ordered.
type renderFlags struct {
	title          string
	groupBy        string
	sortBy         []string
	noSort         bool
	engine         string
	exampleEngine  string
	includeKey     string
	highlightStyle string
	date           string
}

// assetFlags holds template, asset and fragment flags.
type assetFlags struct {
	template    string
	templateCSS string
	templateJS  string
	assetPath   string
	extraCSS    []string
	extraJS     []string
	fragments   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	workers int
	render  renderFlags
	assets  assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline steps")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.groupBy, "group-by", "", "metadata key to group by (default: section)")
	fs.StringSliceVar(&f.sortBy, "sort-by", nil, "metadata keys to sort by (default: section,title)")
	fs.BoolVar(&f.noSort, "no-sort", false, "keep records in source order")
	fs.StringVar(&f.engine, "engine", "", "template engine: amber, html")
	fs.StringVar(&f.exampleEngine, "example-engine", "", "example engine: amber, markdown, html")
	fs.StringVar(&f.includeKey, "include-key", "", "metadata key naming a block as a fragment")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for example source")
	fs.StringVar(&f.date, "date", "", "generation date (\"auto\" = today)")
}

// addAssetFlags adds template and asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template name or file path")
	fs.StringVar(&f.templateCSS, "template-css", "", "template stylesheet name or file path")
	fs.StringVar(&f.templateJS, "template-js", "", "template script name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringArrayVar(&f.extraCSS, "extra-css", nil, "extra stylesheet to document (repeatable)")
	fs.StringArrayVar(&f.extraJS, "extra-js", nil, "extra script to embed (repeatable)")
	fs.StringVar(&f.fragments, "fragments", "", "directory of *.html include fragments")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
// Shared by parseBuildFlags and the completion generator.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Help output goes to w; flag.ErrHelp is returned unwrapped.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printBuildUsage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	return f, fs.Args(), nil
}
