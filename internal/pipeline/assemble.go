package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/eknkc/amber"
)

// Document template engine names.
const (
	TemplateAmber = "amber"
	TemplateHTML  = "html"
)

// ErrTemplateRender indicates the document template failed to parse or execute.
var ErrTemplateRender = errors.New("template rendering failed")

// TemplateEngine turns template source and data into a document.
type TemplateEngine interface {
	Render(ctx context.Context, source string, data *TemplateData) (string, error)
}

// Compile-time interface checks.
var (
	_ TemplateEngine = (*amberTemplate)(nil)
	_ TemplateEngine = (*htmlTemplate)(nil)
)

// Payload is everything the document is built from.
type Payload struct {
	Title       string
	Options     any // the render configuration, exposed to templates as is
	Groups      []Group
	CSS         string // raw stylesheet text
	JS          string // extra scripts, concatenated
	TemplateCSS string
	TemplateJS  string
	Generated   string
}

// TemplateData is the value templates execute against.
// Assets are typed so html/template inserts them without escaping.
type TemplateData struct {
	Title       string
	Options     any
	Groups      []GroupView
	CSS         template.CSS
	JS          template.JS
	TemplateCSS template.CSS
	TemplateJS  template.JS
	Generated   string
	Markdown    func(any) (template.HTML, error)
}

// GroupView is a group as templates see it.
type GroupView struct {
	Name    string
	ID      string // anchor-safe identifier
	Records []RecordView
}

// RecordView is a record as templates see it.
type RecordView struct {
	Title    string
	Meta     map[string]any
	HTML     template.HTML // rendered example
	Markup   string        // rendered example shown as code
	Source   template.HTML // highlighted example source
	Example  string
	Location string
}

// Assembler packages records and assets for a template engine.
type Assembler struct {
	name   string
	engine TemplateEngine
	md     *GoldmarkConverter
}

// NewAssembler resolves the named template engine. An empty name selects amber.
func NewAssembler(name string, md *GoldmarkConverter) (*Assembler, error) {
	if name == "" {
		name = TemplateAmber
	}
	if md == nil {
		md = NewGoldmarkConverter()
	}

	var engine TemplateEngine
	switch name {
	case TemplateAmber:
		engine = &amberTemplate{}
	case TemplateHTML:
		engine = &htmlTemplate{}
	default:
		return nil, fmt.Errorf("%w %q (supported: %s, %s)", ErrUnknownTemplateEngine, name, TemplateAmber, TemplateHTML)
	}

	return &Assembler{name: name, engine: engine, md: md}, nil
}

// Name returns the engine name, which is also the bundled template extension.
func (a *Assembler) Name() string {
	return a.name
}

// Assemble renders the document from templateSource and p.
func (a *Assembler) Assemble(ctx context.Context, templateSource string, p Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.engine.Render(ctx, templateSource, a.templateData(p))
}

func (a *Assembler) templateData(p Payload) *TemplateData {
	data := &TemplateData{
		Title:       p.Title,
		Options:     p.Options,
		Groups:      make([]GroupView, 0, len(p.Groups)),
		CSS:         template.CSS(sanitizeCSS(p.CSS)),         // #nosec G203 -- caller-owned stylesheet
		JS:          template.JS(p.JS),                        // #nosec G203 -- caller-owned script
		TemplateCSS: template.CSS(sanitizeCSS(p.TemplateCSS)), // #nosec G203 -- template asset
		TemplateJS:  template.JS(p.TemplateJS),                // #nosec G203 -- template asset
		Generated:   p.Generated,
		Markdown:    a.markdown,
	}

	seen := make(map[string]int)
	for i, g := range p.Groups {
		view := GroupView{
			Name:    g.Name,
			ID:      uniqueID(groupID(g.Name, i), seen),
			Records: make([]RecordView, 0, len(g.Records)),
		}
		for _, rec := range g.Records {
			view.Records = append(view.Records, RecordView{
				Title:    rec.Title(),
				Meta:     rec.Metadata,
				HTML:     template.HTML(rec.HTML), // #nosec G203 -- compiled example
				Markup:   rec.HTML,
				Source:   template.HTML(rec.Highlighted), // #nosec G203 -- chroma escapes its tokens
				Example:  rec.Example.String(),
				Location: rec.Location(),
			})
		}
		data.Groups = append(data.Groups, view)
	}
	return data
}

// markdown is the template helper that renders Markdown text.
func (a *Assembler) markdown(v any) (template.HTML, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	out, err := a.md.Convert(s)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil // #nosec G203 -- goldmark output
}

// sanitizeCSS escapes sequences that could close a <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// groupID converts a group name to an anchor identifier.
func groupID(name string, index int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		return fmt.Sprintf("group-%d", index+1)
	}
	return "sg-" + id
}

func uniqueID(id string, seen map[string]int) string {
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, n+1)
}

// htmlTemplate executes html/template sources.
type htmlTemplate struct{}

func (e *htmlTemplate) Render(_ context.Context, source string, data *TemplateData) (string, error) {
	tpl, err := template.New("styleguide").
		Funcs(template.FuncMap{"markdown": data.Markdown}).
		Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrTemplateRender, err)
	}
	return execute(tpl, data)
}

// amberTemplate compiles amber sources to html/template and executes them.
type amberTemplate struct{}

func (e *amberTemplate) Render(_ context.Context, source string, data *TemplateData) (doc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: compiler panic: %v", ErrTemplateRender, r)
		}
	}()

	c := amber.New()
	c.PrettyPrint = true
	if err := c.Parse(source); err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrTemplateRender, err)
	}
	compiled, err := c.CompileString()
	if err != nil {
		return "", fmt.Errorf("%w: compiling: %v", ErrTemplateRender, err)
	}

	tpl, err := template.New("styleguide").
		Funcs(amber.FuncMap).
		Funcs(template.FuncMap{"markdown": data.Markdown}).
		Parse(compiled)
	if err != nil {
		return "", fmt.Errorf("%w: parsing compiled template: %v", ErrTemplateRender, err)
	}
	return execute(tpl, data)
}

func execute(tpl *template.Template, data *TemplateData) (string, error) {
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return b.String(), nil
}
