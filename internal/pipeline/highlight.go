package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used for highlight CSS.
const DefaultHighlightStyle = "github"

// ErrHighlight indicates the example source could not be highlighted.
var ErrHighlight = errors.New("highlighting failed")

// Highlighter turns example source into class-annotated HTML.
// It is safe for concurrent use.
type Highlighter struct {
	hint      string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter that prefers the lexer named by hint
// and uses the named chroma style for CSS. Unknown styles fall back to the
// chroma default.
func NewHighlighter(hint, styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &Highlighter{
		hint:  hint,
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight returns the highlighted form of source without a surrounding <pre>.
func (h *Highlighter) Highlight(source string) (string, error) {
	lexer := h.lexer(source)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return b.String(), nil
}

// CSS returns the stylesheet for the classes Highlight emits.
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("%w: writing css: %v", ErrHighlight, err)
	}
	return b.String(), nil
}

// lexer picks the hinted lexer, then content analysis, then plain text.
func (h *Highlighter) lexer(source string) chroma.Lexer {
	var lexer chroma.Lexer
	if h.hint != "" {
		lexer = lexers.Get(h.hint)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
