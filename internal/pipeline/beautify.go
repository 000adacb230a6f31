package pipeline

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Beautifier defaults.
const (
	DefaultIndentWidth = 4
	DefaultWrapWidth   = 60
)

// htmlSpace is the HTML definition of inter-element whitespace.
const htmlSpace = " \t\n\r\f"

// blockElements start on their own line and indent their children.
var blockElements = map[string]bool{
	"html": true, "head": true, "body": true, "title": true, "meta": true, "link": true,
	"div": true, "p": true, "section": true, "article": true, "header": true, "footer": true,
	"nav": true, "aside": true, "main": true, "address": true, "blockquote": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"table": true, "caption": true, "colgroup": true, "col": true,
	"thead": true, "tbody": true, "tfoot": true, "tr": true, "td": true, "th": true,
	"form": true, "fieldset": true, "legend": true, "select": true, "option": true, "optgroup": true,
	"figure": true, "figcaption": true, "details": true, "summary": true,
}

// verbatimElements keep their content exactly as written.
var verbatimElements = map[string]bool{
	"pre": true, "textarea": true, "script": true, "style": true,
}

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// Beautifier re-indents HTML and wraps inline content. Only whitespace
// between tokens changes; tags, attributes and text are copied as written.
// Formatting its own output returns it unchanged.
type Beautifier struct {
	indent string
	width  int
}

// NewBeautifier creates a Beautifier. Non-positive values select the defaults.
func NewBeautifier(indentWidth, wrapWidth int) *Beautifier {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}
	return &Beautifier{indent: strings.Repeat(" ", indentWidth), width: wrapWidth}
}

// Beautify formats src. Input the tokenizer cannot read is returned as is.
func (b *Beautifier) Beautify(src string) string {
	w := &layout{b: b}
	z := html.NewTokenizer(strings.NewReader(src))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return src
			}
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			w.text(raw)

		case html.CommentToken, html.DoctypeToken:
			w.flush()
			w.line(strings.TrimSpace(raw))

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := z.TagName()
			tag := string(tn)
			switch {
			case verbatimElements[tag] && tt == html.StartTagToken:
				w.flush()
				w.line(raw + consumeElement(z, tag))
			case blockElements[tag]:
				w.flush()
				w.line(raw)
				if tt == html.StartTagToken && !voidElements[tag] {
					w.depth++
				}
			default:
				w.atom(raw)
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			if blockElements[string(tn)] {
				w.flush()
				if w.depth > 0 {
					w.depth--
				}
				w.line(raw)
				continue
			}
			w.atom(raw)
		}
	}

	w.flush()
	return strings.Join(w.lines, "\n")
}

// layout accumulates output lines and the pending inline run.
type layout struct {
	b     *Beautifier
	lines []string
	depth int

	words []string        // finished words of the inline run
	word  strings.Builder // word being glued together
}

func (w *layout) prefix() string {
	return strings.Repeat(w.b.indent, w.depth)
}

func (w *layout) line(s string) {
	w.lines = append(w.lines, w.prefix()+s)
}

// atom appends a token that touches its neighbours unless whitespace
// separated them in the input.
func (w *layout) atom(s string) {
	w.word.WriteString(s)
}

// text splits raw text into words. Whitespace ends the current word.
func (w *layout) text(raw string) {
	for raw != "" {
		i := strings.IndexAny(raw, htmlSpace)
		if i < 0 {
			w.atom(raw)
			return
		}
		if i > 0 {
			w.atom(raw[:i])
		}
		w.breakWord()
		raw = strings.TrimLeft(raw[i:], htmlSpace)
	}
}

func (w *layout) breakWord() {
	if w.word.Len() == 0 {
		return
	}
	w.words = append(w.words, w.word.String())
	w.word.Reset()
}

// flush packs the inline run greedily into lines of at most width columns.
// A word longer than the width gets a line of its own.
func (w *layout) flush() {
	w.breakWord()
	if len(w.words) == 0 {
		return
	}

	prefix := w.prefix()
	var cur strings.Builder
	for _, word := range w.words {
		switch {
		case cur.Len() == 0:
			cur.WriteString(prefix)
			cur.WriteString(word)
		case utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) <= w.b.width:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			w.lines = append(w.lines, cur.String())
			cur.Reset()
			cur.WriteString(prefix)
			cur.WriteString(word)
		}
	}
	w.lines = append(w.lines, cur.String())
	w.words = w.words[:0]
}
