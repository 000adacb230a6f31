package styleguide

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/kylamedina/styleguide.js/internal/pipeline"
)

// Pipeline types shared with the public API.
type (
	// Record is one documentation block: metadata, example and rendered HTML.
	Record = pipeline.Record
	// Metadata holds the annotations of a documentation block.
	Metadata = pipeline.Metadata
	// Example is the example markup, possibly split into fragments.
	Example = pipeline.Example
	// Group is a named bucket of records in presentation order.
	Group = pipeline.Group
	// Diagnostic reports a recoverable problem found while rendering.
	Diagnostic = pipeline.Diagnostic
	// Source is one stylesheet text.
	Source = pipeline.Source
)

// Engine names for Options.Engine and Options.ExampleEngine.
const (
	EngineAmber    = pipeline.EngineAmber
	EngineMarkdown = pipeline.EngineMarkdown
	EngineHTML     = pipeline.EngineHTML
)

// Diagnostic stages.
const (
	StageExtract = pipeline.StageExtract
	StageInclude = pipeline.StageInclude
)

// Defaults for Options.
const (
	DefaultGroupBy        = "section"
	DefaultEngine         = EngineAmber
	DefaultExampleEngine  = EngineAmber
	DefaultTitle          = "Style Guide"
	DefaultIncludeKey     = pipeline.DefaultIncludeKey
	DefaultHighlightStyle = pipeline.DefaultHighlightStyle
)

// DefaultSortBy is the default sort key order.
var DefaultSortBy = []string{"section", "title"}

// Options configures one Render call. Zero fields take their defaults.
type Options struct {
	GroupBy       string   `yaml:"groupBy"`       // metadata key to group by
	SortBy        []string `yaml:"sortBy"`        // metadata keys to sort by; nil = default, empty = none
	Engine        string   `yaml:"engine"`        // document template engine
	ExampleEngine string   `yaml:"exampleEngine"` // example markup engine

	ExtraJS  []string `yaml:"extraJs"`  // script files appended to the document script
	ExtraCSS []string `yaml:"extraCss"` // stylesheet files appended to the sources

	OutputFile  string `yaml:"outputFile"`  // "" = no file is written
	Template    string `yaml:"template"`    // asset name or path; "" = bundled
	TemplateCSS string `yaml:"templateCss"` // asset name or path; "" = bundled
	TemplateJS  string `yaml:"templateJs"`  // asset name or path; "" = bundled

	Title          string            `yaml:"title"`
	Fragments      map[string]string `yaml:"fragments"`      // include name -> HTML
	FragmentDir    string            `yaml:"fragmentDir"`    // *.html files, named by file name
	IncludeKey     string            `yaml:"includeKey"`     // metadata key naming a record as a fragment
	HighlightStyle string            `yaml:"highlightStyle"` // chroma style for example source
	Date           string            `yaml:"date"`           // "auto", "auto:FORMAT" or literal text
	Workers        int               `yaml:"workers"`        // 0 = the StyleGuide setting
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

// withDefaults returns a copy of o with zero fields defaulted.
// Slices and maps are copied so the caller's values are never shared.
func (o Options) withDefaults() Options {
	if o.GroupBy == "" {
		o.GroupBy = DefaultGroupBy
	}
	if o.SortBy == nil {
		o.SortBy = DefaultSortBy
	}
	o.SortBy = slices.Clone(o.SortBy)
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.ExampleEngine == "" {
		o.ExampleEngine = DefaultExampleEngine
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.IncludeKey == "" {
		o.IncludeKey = DefaultIncludeKey
	}
	if o.HighlightStyle == "" {
		o.HighlightStyle = DefaultHighlightStyle
	}
	o.ExtraJS = slices.Clone(o.ExtraJS)
	o.ExtraCSS = slices.Clone(o.ExtraCSS)
	o.Fragments = maps.Clone(o.Fragments)
	return o
}

// guideConfig holds StyleGuide-level settings applied by Option.
type guideConfig struct {
	logger      *slog.Logger
	workers     int
	assetPath   string
	assetLoader AssetLoader
}

// Option configures a StyleGuide.
type Option func(*StyleGuide)

// WithLogger sets the logger for pipeline progress. Nil discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *StyleGuide) {
		g.cfg.logger = logger
	}
}

// WithWorkers sets how many records are rendered concurrently.
// Zero or less selects ResolveWorkers(0). Options.Workers overrides it.
func WithWorkers(n int) Option {
	return func(g *StyleGuide) {
		g.cfg.workers = n
	}
}

// WithAssetPath loads templates, styles and scripts from a directory first,
// falling back to the bundled assets.
func WithAssetPath(path string) Option {
	return func(g *StyleGuide) {
		g.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *StyleGuide) {
		g.cfg.assetLoader = loader
	}
}
