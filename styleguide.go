package styleguide

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"github.com/kylamedina/styleguide.js/internal/dateutil"
	"github.com/kylamedina/styleguide.js/internal/fileutil"
	"github.com/kylamedina/styleguide.js/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BlockExtractor   = (*pipeline.Extractor)(nil)
	_ pipeline.ExampleRenderer  = (*pipeline.Renderer)(nil)
	_ pipeline.RecordNormalizer = (*pipeline.Normalizer)(nil)
	_ AssetLoader               = (*assetLoaderAdapter)(nil)
)

// sourceSeparator joins sources into the raw stylesheet text.
const sourceSeparator = " "

// StyleGuide collects stylesheet sources and renders them into a document.
// Create with New(), add sources with AddFile or AddSource, then call Render.
// A StyleGuide is not safe for concurrent use.
type StyleGuide struct {
	cfg     guideConfig
	logger  *slog.Logger
	loader  AssetLoader
	now     func() time.Time
	sources []Source
}

// scriptSeparator ends each extra script so the next one starts a new
// statement, even after a trailing line comment.
const scriptSeparator = "\n;\n"

// New creates a StyleGuide. Returns ErrInvalidAssetPath if WithAssetPath
// names something that is not a readable directory.
func New(opts ...Option) (*StyleGuide, error) {
	g := &StyleGuide{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	g.logger = g.cfg.logger
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}

	switch {
	case g.cfg.assetLoader != nil:
		g.loader = g.cfg.assetLoader
	default:
		loader, err := NewAssetLoader(g.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		g.loader = loader
	}

	return g, nil
}

// AddFile reads a stylesheet and appends it to the source bundle.
func (g *StyleGuide) AddFile(path string) error {
	text, err := fileutil.ReadText(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	g.sources = append(g.sources, Source{Name: path, Text: text})
	return nil
}

// AddSource appends raw stylesheet text to the source bundle.
func (g *StyleGuide) AddSource(text string) {
	name := fmt.Sprintf("source[%d]", len(g.sources))
	g.sources = append(g.sources, Source{Name: name, Text: text})
}

// Sources returns a copy of the source bundle.
func (g *StyleGuide) Sources() []Source {
	out := make([]Source, len(g.sources))
	copy(out, g.sources)
	return out
}

// renderInputs is everything read from disk before the pipeline runs.
type renderInputs struct {
	sources     []Source
	extraJS     string
	template    string
	templateCSS string
	templateJS  string
	fragments   map[string]string
	generated   string
}

// Render runs the pipeline and returns the document with its groups and
// diagnostics. When opts.OutputFile is set the document is written in the
// background; call Result.Wait for the outcome.
func (g *StyleGuide) Render(ctx context.Context, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	opts = opts.withDefaults()
	workers := opts.Workers
	if workers <= 0 {
		workers = g.cfg.workers
	}

	// Engines are resolved before any file is read.
	md := pipeline.NewGoldmarkConverter()
	renderer, err := pipeline.NewRenderer(opts.ExampleEngine, md)
	if err != nil {
		return nil, err
	}
	assembler, err := pipeline.NewAssembler(opts.Engine, md)
	if err != nil {
		return nil, err
	}

	in, err := g.readInputs(opts, assembler.Name())
	if err != nil {
		return nil, err
	}

	extractor := pipeline.NewExtractor(g.logger)
	records, diags, err := extractor.Extract(ctx, in.sources)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("extracted", "stage", pipeline.StageExtract, "sources", len(in.sources), "records", len(records))

	records, err = mapRecords(ctx, workers, records, renderer.Render)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("rendered", "engine", renderer.Name(), "records", len(records))

	resolver := pipeline.NewIncludeResolver(in.fragments, records, opts.IncludeKey, g.logger)
	for i, rec := range records {
		var ds []Diagnostic
		records[i], ds = resolver.Resolve(rec)
		diags = append(diags, ds...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	highlighter := pipeline.NewHighlighter(renderer.LexerHint(), opts.HighlightStyle)
	normalizer := pipeline.NewNormalizer(pipeline.NewBeautifier(0, 0), highlighter)
	records, err = mapRecords(ctx, workers, records, normalizer.Normalize)
	if err != nil {
		return nil, err
	}

	groups := pipeline.GroupSort(records, opts.GroupBy, opts.SortBy)
	g.logger.Debug("grouped", "groups", len(groups), "records", len(records))

	chromaCSS, err := highlighter.CSS()
	if err != nil {
		return nil, err
	}

	doc, err := assembler.Assemble(ctx, in.template, pipeline.Payload{
		Title:       opts.Title,
		Options:     opts,
		Groups:      groups,
		CSS:         joinSources(in.sources),
		JS:          in.extraJS,
		TemplateCSS: in.templateCSS + "\n" + chromaCSS,
		TemplateJS:  in.templateJS,
		Generated:   in.generated,
	})
	if err != nil {
		return nil, err
	}
	g.logger.Debug("assembled", "engine", assembler.Name(), "bytes", len(doc))

	result = &Result{Document: doc, Groups: groups, Diagnostics: diags}
	if opts.OutputFile != "" {
		result.done = g.write(opts.OutputFile, doc)
	}
	return result, nil
}

// write saves the document in the background and reports on the returned
// channel exactly once.
func (g *StyleGuide) write(path, doc string) <-chan error {
	done := make(chan error, 1)
	go func() {
		if err := fileutil.WriteText(path, doc); err != nil {
			done <- fmt.Errorf("%w: %v", ErrWriteOutput, err)
			return
		}
		g.logger.Debug("written", "path", path)
		done <- nil
	}()
	return done
}

// readInputs loads sources, assets and fragments up front so I/O failures
// surface before any stage runs.
func (g *StyleGuide) readInputs(opts Options, engine string) (*renderInputs, error) {
	in := &renderInputs{sources: g.Sources()}

	for _, path := range opts.ExtraCSS {
		text, err := fileutil.ReadText(path)
		if err != nil {
			return nil, fmt.Errorf("%w: extra css: %v", ErrReadSource, err)
		}
		in.sources = append(in.sources, Source{Name: path, Text: text})
	}

	scripts := make([]string, 0, len(opts.ExtraJS))
	for _, path := range opts.ExtraJS {
		text, err := fileutil.ReadText(path)
		if err != nil {
			return nil, fmt.Errorf("%w: extra js: %v", ErrReadAsset, err)
		}
		scripts = append(scripts, text)
	}
	in.extraJS = strings.Join(scripts, scriptSeparator)

	var err error
	if in.template, err = g.loadAsset(opts.Template, func(name string) (string, error) {
		return g.loader.LoadTemplate(name, engine)
	}); err != nil {
		return nil, err
	}
	if in.templateCSS, err = g.loadAsset(opts.TemplateCSS, g.loader.LoadStyle); err != nil {
		return nil, err
	}
	if in.templateJS, err = g.loadAsset(opts.TemplateJS, g.loader.LoadScript); err != nil {
		return nil, err
	}

	if in.fragments, err = loadFragments(opts); err != nil {
		return nil, err
	}

	if in.generated, err = dateutil.Resolve(opts.Date, g.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return in, nil
}

// loadAsset reads ref from disk when it looks like a path and from the
// asset loader otherwise. An empty ref selects the bundled asset.
func (g *StyleGuide) loadAsset(ref string, byName func(string) (string, error)) (string, error) {
	if ref == "" {
		ref = DefaultAsset
	}
	if !fileutil.IsFilePath(ref) {
		return byName(ref)
	}
	text, err := fileutil.ReadText(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadAsset, err)
	}
	return text, nil
}

// loadFragments merges FragmentDir files with opts.Fragments; explicit
// fragments win. File fragments are named by file name without extension
// and their relative links are rebased onto the output directory.
func loadFragments(opts Options) (map[string]string, error) {
	fragments := make(map[string]string, len(opts.Fragments))
	if opts.FragmentDir != "" {
		paths, err := fileutil.ListFiles(opts.FragmentDir, ".html")
		if err != nil {
			return nil, fmt.Errorf("%w: fragments: %v", ErrReadAsset, err)
		}

		outDir := ""
		if opts.OutputFile != "" {
			outDir = filepath.Dir(opts.OutputFile)
		}
		for _, path := range paths {
			text, err := fileutil.ReadText(path)
			if err != nil {
				return nil, fmt.Errorf("%w: fragment: %v", ErrReadAsset, err)
			}
			if text, err = pipeline.RebaseRelativePaths(text, opts.FragmentDir, outDir); err != nil {
				return nil, fmt.Errorf("%w: fragment %s: %v", ErrReadAsset, path, err)
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			fragments[name] = text
		}
	}
	maps.Copy(fragments, opts.Fragments)
	return fragments, nil
}

// joinSources returns the raw stylesheet text passed to templates.
func joinSources(sources []Source) string {
	texts := make([]string, len(sources))
	for i, s := range sources {
		texts[i] = s.Text
	}
	return strings.Join(texts, sourceSeparator)
}
