package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/eknkc/amber"
)

// Example engine names.
const (
	EngineAmber    = "amber"
	EngineMarkdown = "markdown"
	EngineHTML     = "html"
)

// Sentinel errors for example rendering.
var (
	ErrUnknownEngine  = errors.New("unknown engine")
	ErrExampleCompile = errors.New("example failed to compile")

	// Both match ErrUnknownEngine.
	ErrUnknownExampleEngine  = fmt.Errorf("%w: example engine", ErrUnknownEngine)
	ErrUnknownTemplateEngine = fmt.Errorf("%w: template engine", ErrUnknownEngine)
)

// ExampleRenderer compiles a record's example into HTML.
type ExampleRenderer interface {
	Render(ctx context.Context, rec Record) (Record, error)
}

// exampleEngine compiles example markup of one language.
type exampleEngine interface {
	compile(ctx context.Context, source string) (string, error)
	// lexerHint names the chroma lexer for the example language.
	lexerHint() string
}

// Compile-time interface checks.
var (
	_ ExampleRenderer = (*Renderer)(nil)
	_ exampleEngine   = amberEngine{}
	_ exampleEngine   = (*markdownEngine)(nil)
	_ exampleEngine   = htmlEngine{}
)

// Renderer renders examples with one engine, chosen at construction.
type Renderer struct {
	name   string
	engine exampleEngine
}

// NewRenderer resolves the named example engine.
// An empty name selects amber. md may be nil unless the engine is markdown.
func NewRenderer(name string, md *GoldmarkConverter) (*Renderer, error) {
	if name == "" {
		name = EngineAmber
	}

	var engine exampleEngine
	switch name {
	case EngineAmber:
		engine = amberEngine{}
	case EngineMarkdown:
		if md == nil {
			md = NewGoldmarkConverter()
		}
		engine = &markdownEngine{md: md}
	case EngineHTML:
		engine = htmlEngine{}
	default:
		return nil, fmt.Errorf("%w %q (supported: %v)", ErrUnknownExampleEngine, name, ExampleEngines())
	}

	return &Renderer{name: name, engine: engine}, nil
}

// ExampleEngines lists the supported example engine names, sorted.
func ExampleEngines() []string {
	names := []string{EngineAmber, EngineMarkdown, EngineHTML}
	sort.Strings(names)
	return names
}

// Name returns the engine name.
func (r *Renderer) Name() string {
	return r.name
}

// LexerHint returns the chroma lexer name for the engine's example language.
func (r *Renderer) LexerHint() string {
	return r.engine.lexerHint()
}

// Render joins the example fragments and compiles them. The returned record
// carries the joined example and the compiled HTML.
func (r *Renderer) Render(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	rec.Example = rec.Example.Joined()
	html, err := r.engine.compile(ctx, rec.Example.String())
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s (%q): %v", ErrExampleCompile, rec.Location(), rec.Title(), err)
	}
	rec.HTML = html
	return rec, nil
}

// amberEngine compiles pug-like markup with pretty printing and no locals.
type amberEngine struct{}

func (amberEngine) compile(_ context.Context, source string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiler panic: %v", r)
		}
	}()

	tpl, err := amber.Compile(source, amber.Options{PrettyPrint: true})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]any{}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (amberEngine) lexerHint() string { return "pug" }

// markdownEngine renders Markdown examples.
type markdownEngine struct {
	md *GoldmarkConverter
}

func (e *markdownEngine) compile(ctx context.Context, source string) (string, error) {
	return e.md.ToHTML(ctx, source)
}

func (e *markdownEngine) lexerHint() string { return "markdown" }

// htmlEngine treats the example as finished HTML.
type htmlEngine struct{}

func (htmlEngine) compile(_ context.Context, source string) (string, error) {
	return source, nil
}

func (htmlEngine) lexerHint() string { return "html" }
