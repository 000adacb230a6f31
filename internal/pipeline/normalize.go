package pipeline

import (
	"context"
	"fmt"
)

// RecordNormalizer formats a resolved record for display.
type RecordNormalizer interface {
	Normalize(ctx context.Context, rec Record) (Record, error)
}

// Compile-time interface check.
var _ RecordNormalizer = (*Normalizer)(nil)

// Normalizer beautifies a record's HTML and highlights its example source.
type Normalizer struct {
	beautifier  *Beautifier
	highlighter *Highlighter
}

// NewNormalizer combines a Beautifier and a Highlighter.
func NewNormalizer(b *Beautifier, h *Highlighter) *Normalizer {
	return &Normalizer{beautifier: b, highlighter: h}
}

// Normalize returns rec with beautified HTML and a highlighted example.
// Multi-fragment examples are joined first; joined ones pass unchanged.
func (n *Normalizer) Normalize(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	rec.Example = rec.Example.Joined()
	rec.HTML = n.beautifier.Beautify(rec.HTML)

	highlighted, err := n.highlighter.Highlight(rec.Example.String())
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", rec.Location(), err)
	}
	rec.Highlighted = highlighted
	return rec, nil
}
