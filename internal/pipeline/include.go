package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Include marker vocabulary.
const (
	includeElement  = "include"           // <include html="NAME"></include>
	includeAttr     = "html"              // attribute of the include element
	includeDataAttr = "data-include-html" // replaces the carrying element
)

// DefaultIncludeKey is the metadata key that names a record as a fragment.
const DefaultIncludeKey = "name"

// ErrUnresolvedInclude indicates an include marker names no known fragment.
var ErrUnresolvedInclude = errors.New("unresolved include")

// IncludeResolver splices named HTML fragments in place of include markers.
//
// Names resolve against explicit fragments first, then against records whose
// metadata key (default "name") matches. Record fragments are the records'
// HTML as it was when the resolver was built. Inserted content is not scanned
// again, so resolution always terminates. A marker that cannot be resolved is
// left byte-for-byte in place and reported as a Diagnostic.
type IncludeResolver struct {
	fragments map[string]string
	logger    *slog.Logger
}

// NewIncludeResolver builds a resolver from explicit fragments and rendered
// records. When several records share a name, the first one wins.
func NewIncludeResolver(fragments map[string]string, records []Record, key string, logger *slog.Logger) *IncludeResolver {
	if key == "" {
		key = DefaultIncludeKey
	}

	lookup := make(map[string]string, len(fragments)+len(records))
	for name, frag := range fragments {
		lookup[name] = frag
	}
	for _, rec := range records {
		name := rec.Metadata.String(key)
		if name == "" {
			continue
		}
		if _, exists := lookup[name]; exists {
			continue
		}
		lookup[name] = rec.HTML
	}

	return &IncludeResolver{fragments: lookup, logger: orDiscard(logger)}
}

// Resolve returns rec with its includes resolved and a diagnostic for every
// marker left unresolved.
func (r *IncludeResolver) Resolve(rec Record) (Record, []Diagnostic) {
	out, unresolved := r.ResolveHTML(rec.HTML)
	rec.HTML = out

	var diags []Diagnostic
	for _, name := range unresolved {
		r.logger.Debug("unresolved include", "source", rec.Source, "line", rec.Line, "include", name)
		diags = append(diags, Diagnostic{
			Stage:   StageInclude,
			Source:  rec.Source,
			Line:    rec.Line,
			Message: fmt.Sprintf("%q in %q, marker left in place", name, rec.Title()),
			Err:     ErrUnresolvedInclude,
		})
	}
	return rec, diags
}

// ResolveHTML resolves the markers in src. It returns the new HTML and the
// names of markers that could not be resolved, in document order.
//
// A marker element ends at its matching end tag. When an end tag closing an
// enclosing element comes first, or the input ends, the marker is only its
// start tag and the following markup is kept.
func (r *IncludeResolver) ResolveHTML(src string) (string, []string) {
	if !strings.Contains(strings.ToLower(src), includeElement) {
		return src, nil
	}

	toks, ok := tokenize(src)
	if !ok {
		return src, nil
	}

	var (
		b          strings.Builder
		unresolved []string
		open       []string // enclosing elements, innermost last
	)
	b.Grow(len(src))

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if !tok.marker {
			b.WriteString(tok.raw)
			switch tok.kind {
			case html.StartTagToken:
				if !voidElements[tok.tag] {
					open = append(open, tok.tag)
				}
			case html.EndTagToken:
				open = closeElement(open, tok.tag)
			}
			continue
		}

		end := i
		if tok.kind == html.StartTagToken && !voidElements[tok.tag] {
			if j, closed := elementEnd(toks, i, open); closed {
				end = j
			}
		}

		frag, found := r.fragments[tok.name]
		if !found {
			unresolved = append(unresolved, tok.name)
			for _, t := range toks[i : end+1] {
				b.WriteString(t.raw)
			}
		} else {
			b.WriteString(frag)
		}
		i = end
	}

	return b.String(), unresolved
}

// htmlToken is one tokenizer token with its raw text and lower-case tag name.
type htmlToken struct {
	kind   html.TokenType
	raw    string
	tag    string
	name   string // fragment name, for markers
	marker bool
}

// tokenize splits src into tokens. It reports false on a tokenizer error
// other than the end of input.
func tokenize(src string) ([]htmlToken, bool) {
	z := html.NewTokenizer(strings.NewReader(src))
	var toks []htmlToken
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return toks, z.Err() == io.EOF
		}

		// TagName and TagAttr lower-case the buffer in place, so copy first.
		tok := htmlToken{kind: tt, raw: string(z.Raw())}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok.tag, tok.name, tok.marker = markerName(z)
		case html.EndTagToken:
			tn, _ := z.TagName()
			tok.tag = string(tn)
		}
		toks = append(toks, tok)
	}
}

// markerName reports whether the current tag is an include marker and which
// fragment it names.
func markerName(z *html.Tokenizer) (tag, name string, ok bool) {
	tn, hasAttr := z.TagName()
	tag = string(tn)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch {
		case string(key) == includeDataAttr:
			return tag, string(val), true
		case tag == includeElement && string(key) == includeAttr:
			name, ok = string(val), true
		}
	}
	return tag, name, ok
}

// elementEnd finds the end tag closing the element started at toks[start].
// It gives up at an end tag that belongs to an element in ancestors, or at
// the end of input.
func elementEnd(toks []htmlToken, start int, ancestors []string) (int, bool) {
	tag := toks[start].tag
	var inner []string
	for j := start + 1; j < len(toks); j++ {
		t := toks[j]
		switch t.kind {
		case html.StartTagToken:
			if !voidElements[t.tag] {
				inner = append(inner, t.tag)
			}
		case html.EndTagToken:
			if slices.Contains(inner, t.tag) {
				inner = closeElement(inner, t.tag)
				continue
			}
			if t.tag == tag {
				return j, true
			}
			if slices.Contains(ancestors, t.tag) {
				return 0, false
			}
		}
	}
	return 0, false
}

// closeElement pops stack down to and including the innermost tag. An end
// tag with no open element leaves stack unchanged.
func closeElement(stack []string, tag string) []string {
	for k := len(stack) - 1; k >= 0; k-- {
		if stack[k] == tag {
			return stack[:k]
		}
	}
	return stack
}
