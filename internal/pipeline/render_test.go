package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		engine   string
		wantName string
		wantHint string
		wantErr  error
	}{
		{name: "empty selects amber", engine: "", wantName: EngineAmber, wantHint: "pug"},
		{name: "amber", engine: EngineAmber, wantName: EngineAmber, wantHint: "pug"},
		{name: "markdown", engine: EngineMarkdown, wantName: EngineMarkdown, wantHint: "markdown"},
		{name: "html", engine: EngineHTML, wantName: EngineHTML, wantHint: "html"},
		{name: "unknown", engine: "jade", wantErr: ErrUnknownExampleEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRenderer(tt.engine, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewRenderer(%q) error = %v, want %v", tt.engine, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRenderer(%q) error = %v", tt.engine, err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
			if r.LexerHint() != tt.wantHint {
				t.Errorf("LexerHint() = %q, want %q", r.LexerHint(), tt.wantHint)
			}
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name         string
		engine       string
		example      Example
		wantContains []string
	}{
		{
			name:         "amber plain text",
			engine:       EngineAmber,
			example:      Example{"| Hello plain text"},
			wantContains: []string{"Hello plain text"},
		},
		{
			name:         "amber nested elements",
			engine:       EngineAmber,
			example:      Example{"div.card\n\tp Hi"},
			wantContains: []string{`<div class="card">`, "<p>", "Hi", "</div>"},
		},
		{
			name:         "amber fragments joined before compiling",
			engine:       EngineAmber,
			example:      Example{"div.card\n", "\tp Joined"},
			wantContains: []string{`<div class="card">`, "Joined"},
		},
		{
			name:         "markdown",
			engine:       EngineMarkdown,
			example:      Example{"**Bold** text"},
			wantContains: []string{"<strong>Bold</strong>"},
		},
		{
			name:         "markdown keeps raw html",
			engine:       EngineMarkdown,
			example:      Example{"<button class=\"btn\">Go</button>"},
			wantContains: []string{`<button class="btn">Go</button>`},
		},
		{
			name:         "html passthrough",
			engine:       EngineHTML,
			example:      Example{"<a class=\"btn\">", "Go</a>"},
			wantContains: []string{`<a class="btn">Go</a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRenderer(tt.engine, nil)
			if err != nil {
				t.Fatal(err)
			}

			in := Record{Metadata: Metadata{"title": "T"}, Example: tt.example}
			got, err := r.Render(ctx, in)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got.HTML, want) {
					t.Errorf("HTML %q does not contain %q", got.HTML, want)
				}
			}
			if len(got.Example) != 1 {
				t.Errorf("Example has %d fragments after rendering, want 1", len(got.Example))
			}
			if in.HTML != "" {
				t.Error("input record was modified")
			}
		})
	}
}

func TestRenderer_CompileFailure(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(EngineAmber, nil)
	if err != nil {
		t.Fatal(err)
	}

	rec := Record{
		Metadata: Metadata{"title": "Broken"},
		Example:  Example{"p #{$undefined}"},
		Source:   "buttons.css",
		Line:     12,
	}
	_, err = r.Render(context.Background(), rec)
	if !errors.Is(err, ErrExampleCompile) {
		t.Fatalf("Render() error = %v, want ErrExampleCompile", err)
	}
	for _, want := range []string{"buttons.css:12", `"Broken"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not identify the record (%s)", err, want)
		}
	}
}

func TestRenderer_Canceled(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(EngineHTML, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, Record{Example: Example{"<p>x</p>"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
