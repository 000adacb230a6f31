package pipeline

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestBeautifier_Beautify(t *testing.T) {
	t.Parallel()

	b := NewBeautifier(0, 0)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "Hello plain text",
			want:  "Hello plain text",
		},
		{
			name:  "nested blocks with inline content",
			input: `<div class="card"><p>Hello <b>world</b>!</p></div>`,
			want: "<div class=\"card\">\n" +
				"    <p>\n" +
				"        Hello <b>world</b>!\n" +
				"    </p>\n" +
				"</div>",
		},
		{
			name:  "whitespace between tags dropped",
			input: "\n\n<ul>\n\n   <li>One</li>\n\n\n<li>Two</li>\n</ul>\n\n",
			want: "<ul>\n" +
				"    <li>\n" +
				"        One\n" +
				"    </li>\n" +
				"    <li>\n" +
				"        Two\n" +
				"    </li>\n" +
				"</ul>",
		},
		{
			name:  "inline elements stay on one line",
			input: `<a class="btn">Go</a> <span>New</span>`,
			want:  `<a class="btn">Go</a> <span>New</span>`,
		},
		{
			name:  "void block element does not indent",
			input: `<div><hr><p>x</p></div>`,
			want: "<div>\n" +
				"    <hr>\n" +
				"    <p>\n" +
				"        x\n" +
				"    </p>\n" +
				"</div>",
		},
		{
			name:  "pre kept verbatim",
			input: "<div><pre>  a\n    b</pre></div>",
			want: "<div>\n" +
				"    <pre>  a\n    b</pre>\n" +
				"</div>",
		},
		{
			name:  "comment on its own line",
			input: `<div><!-- note --><p>x</p></div>`,
			want: "<div>\n" +
				"    <!-- note -->\n" +
				"    <p>\n" +
				"        x\n" +
				"    </p>\n" +
				"</div>",
		},
		{
			name:  "entities preserved",
			input: `<p>Fish &amp; Chips &lt;3</p>`,
			want:  "<p>\n    Fish &amp; Chips &lt;3\n</p>",
		},
		{
			name:  "stray end tag does not go negative",
			input: `</div><p>x</p>`,
			want:  "</div>\n<p>\n    x\n</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := b.Beautify(tt.input); got != tt.want {
				t.Errorf("Beautify() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestBeautifier_Wrap(t *testing.T) {
	t.Parallel()

	words := make([]string, 40)
	for i := range words {
		words[i] = "lorem"
	}
	input := "<div><p>" + strings.Join(words, " ") + "</p></div>"

	got := NewBeautifier(0, 0).Beautify(input)
	lines := strings.Split(got, "\n")
	if len(lines) < 5 {
		t.Fatalf("expected wrapped output, got %d lines:\n%s", len(lines), got)
	}
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > DefaultWrapWidth {
			t.Errorf("line %q has %d columns, want at most %d", l, n, DefaultWrapWidth)
		}
	}
	if n := strings.Count(got, "lorem"); n != len(words) {
		t.Errorf("output has %d words, want %d", n, len(words))
	}
}

func TestBeautifier_LongWordGetsOwnLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	got := NewBeautifier(2, 20).Beautify("a " + long + " b")
	want := "a\n" + long + "\nb"
	if got != want {
		t.Errorf("Beautify() = %q, want %q", got, want)
	}
}

func TestBeautifier_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello plain text",
		`<div class="card"><p>Hello <b>world</b>!</p></div>`,
		"<!DOCTYPE html><html><head><title>T</title><style>a { color: red }\n</style></head><body><h1>Hi</h1></body></html>",
		"<ul>\n<li>One</li><li>Two <em>2</em></li></ul>",
		"<div><pre>  keep\n   this</pre><textarea>\n x</textarea></div>",
		"<p>" + strings.Repeat("word ", 50) + "</p>",
		`<form><label>Name <input type="text" name="n"></label><select><option>A</option></select></form>`,
		"<p>a<br>b<br/>c</p><script>if (a < b) { go() }</script>",
		"<div\n  class=\"multi\"\n  id=\"x\">y</div>",
		"<p>unclosed<div>mixed</p></div></div>",
	}

	b := NewBeautifier(0, 0)
	for _, in := range inputs {
		once := b.Beautify(in)
		twice := b.Beautify(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nfirst:\n%s\nsecond:\n%s", in, once, twice)
		}
	}
}

func TestBeautifier_OnlyWhitespaceChanges(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<div class="card" data-x="1 2"><p>Hello <b>world</b>!</p></div>`,
		"<table><tr><td>1</td><td>2</td></tr></table>",
		"Hello plain text",
	}

	b := NewBeautifier(0, 0)
	for _, in := range inputs {
		got := b.Beautify(in)
		if stripSpace(got) != stripSpace(in) {
			t.Errorf("Beautify(%q) changed non-whitespace content: %q", in, got)
		}
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
