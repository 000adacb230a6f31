package styleguide_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	styleguide "github.com/kylamedina/styleguide.js"
)

// Notes:
// - Documents are rendered with the "html" template engine where assertions
//   need exact markup; the bundled amber template is only checked for content.
// - Literal Date values keep output independent of the clock.

const primaryButton = `/***
section: Buttons
title: Primary
---
a.btn.btn-primary Primary
*/
.btn-primary { color: blue; }
`

const secondaryButton = `/***
section: Buttons
title: Secondary
---
a.btn.btn-secondary Secondary
*/
.btn-secondary { color: gray; }
`

func newGuide(t *testing.T, opts ...styleguide.Option) *styleguide.StyleGuide {
	t.Helper()
	g, err := styleguide.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// End-to-end
// ---------------------------------------------------------------------------

func TestRender_ButtonsScenario(t *testing.T) {
	t.Parallel()

	g := newGuide(t)
	g.AddSource(secondaryButton)
	g.AddSource(primaryButton)

	result, err := g.Render(context.Background(), styleguide.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := result.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if len(result.Groups) != 1 || result.Groups[0].Name != "Buttons" {
		t.Fatalf("groups = %+v, want a single Buttons group", result.Groups)
	}

	records := result.Groups[0].Records
	if len(records) != 2 {
		t.Fatalf("Buttons has %d records, want 2", len(records))
	}
	for i, want := range []string{"Primary", "Secondary"} {
		if got := records[i].Title(); got != want {
			t.Errorf("record %d title = %q, want %q", i, got, want)
		}
		if strings.TrimSpace(records[i].HTML) == "" {
			t.Errorf("record %q has empty HTML", want)
		}
		if records[i].Highlighted == "" {
			t.Errorf("record %q has no highlighted source", want)
		}
	}
	if !strings.Contains(records[0].HTML, "btn-primary") {
		t.Errorf("Primary HTML = %q", records[0].HTML)
	}

	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
	for _, want := range []string{"Style Guide", "Buttons", ".btn-primary { color: blue; }", ".chroma"} {
		if !strings.Contains(result.Document, want) {
			t.Errorf("document missing %q", want)
		}
	}

	index := result.GroupIndex()
	if len(index["Buttons"]) != 2 {
		t.Errorf("GroupIndex()[Buttons] has %d records, want 2", len(index["Buttons"]))
	}
	if n := len(result.Records()); n != 2 {
		t.Errorf("Records() has %d records, want 2", n)
	}
}

func TestRender_PlainTextRoundTrip(t *testing.T) {
	t.Parallel()

	g := newGuide(t)
	g.AddSource("/***\ntitle: Text\n---\n| Hello plain text\n*/")

	result, err := g.Render(context.Background(), styleguide.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	recs := result.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if got := strings.Join(strings.Fields(recs[0].HTML), " "); !strings.Contains(got, "Hello plain text") {
		t.Errorf("HTML = %q, want it to contain the text", recs[0].HTML)
	}
}

func TestRender_HTMLTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tpl := writeFile(t, dir, "page.html",
		`<h1>{{.Title}}</h1>{{range .Groups}}<h2 id="{{.ID}}">{{.Name}}</h2>{{range .Records}}<h3>{{.Title}}</h3>{{end}}{{end}}<p>{{.Generated}}</p>`)

	g := newGuide(t)
	g.AddSource(primaryButton)
	g.AddSource(`/***
section: Forms
title: Input
---
input(type="text")
*/`)

	result, err := g.Render(context.Background(), styleguide.Options{
		Engine:   styleguide.EngineHTML,
		Template: tpl,
		Title:    "Kit",
		Date:     "Spring release",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `<h1>Kit</h1><h2 id="sg-buttons">Buttons</h2><h3>Primary</h3><h2 id="sg-forms">Forms</h2><h3>Input</h3><p>Spring release</p>`
	if result.Document != want {
		t.Errorf("Document =\n%s\nwant\n%s", result.Document, want)
	}
}

func TestRender_ExampleEngines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		engine  string
		example string
		want    string
	}{
		{name: "amber", engine: styleguide.EngineAmber, example: "span.badge New", want: `<span class="badge">`},
		{name: "markdown", engine: styleguide.EngineMarkdown, example: "**bold**", want: "<strong>bold</strong>"},
		{name: "html", engine: styleguide.EngineHTML, example: "<em>as is</em>", want: "<em>as is</em>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newGuide(t)
			g.AddSource("/***\ntitle: X\n---\n" + tt.example + "\n*/")

			result, err := g.Render(context.Background(), styleguide.Options{ExampleEngine: tt.engine})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got := result.Records()[0].HTML; !strings.Contains(got, tt.want) {
				t.Errorf("HTML = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Includes and diagnostics
// ---------------------------------------------------------------------------

func TestRender_Includes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fragDir := filepath.Join(dir, "fragments")
	writeFile(t, fragDir, "logo.html", `<img src="logo.png" alt="logo">`)

	g := newGuide(t)
	g.AddSource(`/***
title: Icon
name: icon
---
<i class="icon"></i>
*/
/***
title: Header
---
<header>
  <include html="logo"></include>
  <div data-include-html="icon">placeholder</div>
  <include html="missing"></include>
</header>
*/`)

	result, err := g.Render(context.Background(), styleguide.Options{
		ExampleEngine: styleguide.EngineHTML,
		FragmentDir:   fragDir,
		OutputFile:    filepath.Join(dir, "out", "guide.html"),
		Date:          "-",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := result.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	var header styleguide.Record
	for _, r := range result.Records() {
		if r.Title() == "Header" {
			header = r
		}
	}
	for _, want := range []string{`src="../fragments/logo.png"`, `<i class="icon">`, `<include html="missing">`} {
		if !strings.Contains(header.HTML, want) {
			t.Errorf("Header HTML missing %q:\n%s", want, header.HTML)
		}
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one unresolved include", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if d.Stage != styleguide.StageInclude || !errors.Is(d.Err, styleguide.ErrUnresolvedInclude) {
		t.Errorf("diagnostic = %+v", d)
	}
	if strings.Contains(header.HTML, "placeholder") {
		t.Error("data-include-html element content was not replaced")
	}
}

func TestRender_MalformedBlockIsDiagnostic(t *testing.T) {
	t.Parallel()

	g := newGuide(t)
	g.AddSource(primaryButton)
	g.AddSource("/***\ntitle: [unclosed\n---\np x\n*/")

	result, err := g.Render(context.Background(), styleguide.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := len(result.Records()); n != 1 {
		t.Errorf("got %d records, want 1", n)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Stage != styleguide.StageExtract {
		t.Fatalf("diagnostics = %v, want one extract diagnostic", result.Diagnostics)
	}
	if d := result.Diagnostics[0]; d.Source != "source[1]" || d.Line < 1 {
		t.Errorf("diagnostic location = %s:%d", d.Source, d.Line)
	}
}

// ---------------------------------------------------------------------------
// Fatal errors
// ---------------------------------------------------------------------------

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		opts    styleguide.Options
		wantErr error
	}{
		{
			name:    "unknown example engine",
			source:  primaryButton,
			opts:    styleguide.Options{ExampleEngine: "haml"},
			wantErr: styleguide.ErrUnknownEngine,
		},
		{
			name:    "unknown template engine",
			source:  primaryButton,
			opts:    styleguide.Options{Engine: "handlebars"},
			wantErr: styleguide.ErrUnknownEngine,
		},
		{
			name:    "example compile failure",
			source:  "/***\ntitle: Broken\n---\np #{$nope}\n*/",
			wantErr: styleguide.ErrExampleCompile,
		},
		{
			name:    "missing template file",
			source:  primaryButton,
			opts:    styleguide.Options{Template: "/no/such/template.amber"},
			wantErr: styleguide.ErrReadAsset,
		},
		{
			name:    "missing template name",
			source:  primaryButton,
			opts:    styleguide.Options{Template: "nosuchtemplate"},
			wantErr: styleguide.ErrTemplateNotFound,
		},
		{
			name:    "missing extra css",
			source:  primaryButton,
			opts:    styleguide.Options{ExtraCSS: []string{"/no/such/extra.css"}},
			wantErr: styleguide.ErrReadSource,
		},
		{
			name:    "missing extra js",
			source:  primaryButton,
			opts:    styleguide.Options{ExtraJS: []string{"/no/such/extra.js"}},
			wantErr: styleguide.ErrReadAsset,
		},
		{
			name:    "bad date format",
			source:  primaryButton,
			opts:    styleguide.Options{Date: "auto:[YYYY"},
			wantErr: styleguide.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newGuide(t)
			g.AddSource(tt.source)

			result, err := g.Render(context.Background(), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Render() error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Error("Render() returned a result with an error")
			}
		})
	}
}

func TestRender_CompileErrorNamesRecord(t *testing.T) {
	t.Parallel()

	g := newGuide(t)
	g.AddSource(primaryButton)
	g.AddSource("\n/***\ntitle: Broken\n---\np #{$nope}\n*/")

	_, err := g.Render(context.Background(), styleguide.Options{})
	if err == nil {
		t.Fatal("Render() expected error")
	}
	for _, want := range []string{"source[1]:2", "Broken"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	g := newGuide(t)
	g.AddSource(primaryButton)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Render(ctx, styleguide.Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// Sources and output
// ---------------------------------------------------------------------------

func TestAddFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "buttons.css", primaryButton)

	g := newGuide(t)
	if err := g.AddFile(path); err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if err := g.AddFile(filepath.Join(dir, "missing.css")); !errors.Is(err, styleguide.ErrReadSource) {
		t.Errorf("AddFile(missing) error = %v, want ErrReadSource", err)
	}

	g.AddSource(secondaryButton)
	sources := g.Sources()
	if len(sources) != 2 || sources[0].Name != path || sources[1].Name != "source[1]" {
		t.Errorf("Sources() = %+v", sources)
	}
}

func TestRender_ExtraAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	extraCSS := writeFile(t, dir, "extra.css", secondaryButton)
	extraJS := writeFile(t, dir, "extra.js", "window.extraLoaded = true;")

	g := newGuide(t)
	g.AddSource(primaryButton)

	result, err := g.Render(context.Background(), styleguide.Options{
		ExtraCSS: []string{extraCSS},
		ExtraJS:  []string{extraJS},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := len(result.Records()); n != 2 {
		t.Errorf("extra CSS blocks not extracted: %d records", n)
	}
	for _, want := range []string{".btn-secondary { color: gray; }", "window.extraLoaded = true;"} {
		if !strings.Contains(result.Document, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRender_ExtraScriptsStaySeparate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "a.js", "var a = 1 // no semicolon")
	second := writeFile(t, dir, "b.js", "(function () { a++ })()")
	tpl := writeFile(t, dir, "page.html", `<script>{{.JS}}</script>`)

	g := newGuide(t)
	g.AddSource(primaryButton)

	result, err := g.Render(context.Background(), styleguide.Options{
		Engine:   styleguide.EngineHTML,
		Template: tpl,
		ExtraJS:  []string{first, second},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "<script>var a = 1 // no semicolon\n;\n(function () { a++ })()</script>"
	if result.Document != want {
		t.Errorf("Document = %q, want %q", result.Document, want)
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "dir", "guide.html")

	g := newGuide(t)
	g.AddSource(primaryButton)

	result, err := g.Render(context.Background(), styleguide.Options{OutputFile: out})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := result.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if err := result.Wait(); err != nil {
		t.Fatalf("second Wait() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != result.Document {
		t.Error("written file differs from Result.Document")
	}
}

func TestRender_WriteFailureReportedByWait(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := writeFile(t, dir, "file", "x")

	g := newGuide(t)
	g.AddSource(primaryButton)

	result, err := g.Render(context.Background(), styleguide.Options{
		OutputFile: filepath.Join(blocker, "guide.html"),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := result.Wait(); !errors.Is(err, styleguide.ErrWriteOutput) {
		t.Errorf("Wait() error = %v, want ErrWriteOutput", err)
	}
	if result.Document == "" {
		t.Error("document should exist even when the write fails")
	}
}

func TestRender_RepeatableAndIndependent(t *testing.T) {
	t.Parallel()

	g := newGuide(t, styleguide.WithWorkers(1))
	g.AddSource(primaryButton)
	g.AddSource(secondaryButton)

	opts := styleguide.Options{SortBy: []string{"title"}, Date: "fixed"}
	first, err := g.Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 4
	second, err := g.Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Document != second.Document {
		t.Error("rendering twice produced different documents")
	}
	if opts.SortBy[0] != "title" || opts.GroupBy != "" {
		t.Error("Render modified the caller's options")
	}
}
