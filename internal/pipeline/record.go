package pipeline

import (
	"fmt"
	"strings"
)

// Example is the example markup of a documentation block. It may arrive as
// several fragments; String joins them without a separator.
type Example []string

// String returns the joined example text.
func (e Example) String() string {
	return strings.Join(e, "")
}

// Joined returns a single-fragment Example. Joining twice is a no-op.
func (e Example) Joined() Example {
	if len(e) <= 1 {
		return e
	}
	return Example{e.String()}
}

// Metadata holds the annotations parsed from a documentation block header.
type Metadata map[string]any

// Lookup returns the value stored under key and whether it is present.
// A YAML null counts as absent.
func (m Metadata) Lookup(key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the value under key formatted as text, or "" when absent.
func (m Metadata) String(key string) string {
	v, ok := m.Lookup(key)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Record is one documentation block moving through the pipeline.
// Stages take a Record by value and return an updated copy.
type Record struct {
	Metadata    Metadata
	Example     Example
	HTML        string // empty until rendered
	Highlighted string // highlighted example source, set by the normalizer
	Source      string // name of the source the block came from
	Line        int    // 1-based line of the block opener
}

// Title returns the record's "title" metadata.
func (r Record) Title() string {
	return r.Metadata.String("title")
}

// Location formats the record position for messages.
func (r Record) Location() string {
	if r.Source == "" {
		return fmt.Sprintf("line %d", r.Line)
	}
	return fmt.Sprintf("%s:%d", r.Source, r.Line)
}

// Diagnostic stages.
const (
	StageExtract = "extract"
	StageInclude = "include"
)

// Diagnostic reports a recoverable problem. The pipeline keeps going after
// recording one.
type Diagnostic struct {
	Stage   string
	Source  string
	Line    int
	Message string
	Err     error
}

// String formats the diagnostic as "source:line: stage: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Source != "" {
		b.WriteString(d.Source)
		b.WriteString(":")
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:", d.Line)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(d.Stage)
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

// Source is one stylesheet text in the bundle.
type Source struct {
	Name string
	Text string
}
