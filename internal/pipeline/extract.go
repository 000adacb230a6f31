package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kylamedina/styleguide.js/internal/yamlutil"
)

// exampleKey is the metadata key holding the example when a block has no
// "---" separator.
const exampleKey = "example"

// separatorLine splits a block into metadata (above) and example (below).
const separatorLine = "---"

// ErrUnterminatedBlock indicates a documentation block opener without a closing "*/".
var ErrUnterminatedBlock = errors.New("unterminated documentation block")

// BlockExtractor defines the contract for extracting documentation records
// from stylesheet sources.
type BlockExtractor interface {
	Extract(ctx context.Context, sources []Source) ([]Record, []Diagnostic, error)
}

// Extractor recognizes "/*** ... */" comments and turns them into Records.
// Ordinary comments are ignored. A block whose metadata fails to parse is
// reported as a Diagnostic and skipped; scanning continues.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor. A nil logger discards output.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: orDiscard(logger)}
}

// Extract scans every source in order and returns records in source order.
// The only error is context cancellation.
func (e *Extractor) Extract(ctx context.Context, sources []Source) ([]Record, []Diagnostic, error) {
	var (
		records []Record
		diags   []Diagnostic
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		recs, ds := e.ExtractSource(src)
		records = append(records, recs...)
		diags = append(diags, ds...)
	}
	return records, diags, nil
}

// ExtractText extracts records from a single unnamed text.
func (e *Extractor) ExtractText(text string) ([]Record, []Diagnostic) {
	return e.ExtractSource(Source{Text: text})
}

// ExtractSource extracts records from one source.
func (e *Extractor) ExtractSource(src Source) ([]Record, []Diagnostic) {
	blocks, unterminatedLine := scanBlocks(src.Text)

	var (
		records []Record
		diags   []Diagnostic
	)
	for _, blk := range blocks {
		rec, ok, diag := e.buildRecord(src.Name, blk)
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if unterminatedLine > 0 {
		diags = append(diags, Diagnostic{
			Stage:   StageExtract,
			Source:  src.Name,
			Line:    unterminatedLine,
			Message: "block skipped",
			Err:     ErrUnterminatedBlock,
		})
	}

	return records, diags
}

// blockToken is one documentation comment found by scanBlocks.
type blockToken struct {
	Body string // text between "/***" and "*/", stars trimmed
	Line int    // 1-based line of the opener
}

// scanBlocks walks text comment by comment and returns documentation blocks,
// i.e. comments opened with three or more stars. A documentation opener that
// is never closed stops the scan; its line is returned as unterminatedLine.
func scanBlocks(text string) (blocks []blockToken, unterminatedLine int) {
	line := 1
	pos := 0
	for pos < len(text) {
		idx := strings.Index(text[pos:], "/*")
		if idx < 0 {
			break
		}
		start := pos + idx
		line += strings.Count(text[pos:start], "\n")

		bodyStart := start + 2
		end := strings.Index(text[bodyStart:], "*/")
		if end < 0 {
			if strings.HasPrefix(text[bodyStart:], "**") {
				return blocks, line
			}
			break
		}

		bodyEnd := bodyStart + end
		isDoc := strings.HasPrefix(text[bodyStart:bodyEnd], "**")
		if isDoc {
			body := strings.TrimLeft(text[bodyStart:bodyEnd], "*")
			body = strings.TrimRight(body, "*")
			blocks = append(blocks, blockToken{Body: body, Line: line})
		}

		line += strings.Count(text[start:bodyEnd], "\n")
		pos = bodyEnd + 2
	}
	return blocks, 0
}

// buildRecord parses one block. ok is false when the block is not
// documentation (no mapping or no example); diag is set on malformed metadata.
func (e *Extractor) buildRecord(source string, blk blockToken) (rec Record, ok bool, diag *Diagnostic) {
	lines := dedentBlock(strings.Split(blk.Body, "\n"))

	metaLines, exampleLines, hasSeparator := splitAtSeparator(lines)

	metaText := strings.Join(metaLines, "\n")
	var meta map[string]any
	if strings.TrimSpace(metaText) == "" {
		if !hasSeparator {
			e.logger.Debug("skipping empty block", "source", source, "line", blk.Line)
			return Record{}, false, nil
		}
		meta = map[string]any{}
	} else {
		var err error
		meta, err = yamlutil.DecodeMapping([]byte(metaText))
		if errors.Is(err, yamlutil.ErrNotMapping) {
			e.logger.Debug("skipping block without metadata mapping", "source", source, "line", blk.Line)
			return Record{}, false, nil
		}
		if err != nil {
			line := blk.Line
			if yl := yamlutil.ErrorLine(err); yl > 0 {
				line = blk.Line + yl - 1
			}
			return Record{}, false, &Diagnostic{
				Stage:   StageExtract,
				Source:  source,
				Line:    line,
				Message: "malformed metadata, block skipped",
				Err:     err,
			}
		}
	}

	var example Example
	if hasSeparator {
		text := strings.Join(dedent(trimBlankLines(exampleLines)), "\n")
		if text != "" {
			example = Example{text}
		}
	} else {
		example = exampleFromValue(meta[exampleKey])
		delete(meta, exampleKey)
	}

	if len(example) == 0 {
		e.logger.Debug("skipping block without example", "source", source, "line", blk.Line)
		return Record{}, false, nil
	}

	return Record{
		Metadata: Metadata(meta),
		Example:  example,
		Source:   source,
		Line:     blk.Line,
	}, true, nil
}

// exampleFromValue converts the decoded "example" value into fragments.
// Strings become one fragment; sequences become one fragment per item.
func exampleFromValue(v any) Example {
	switch ex := v.(type) {
	case string:
		if strings.TrimSpace(ex) == "" {
			return nil
		}
		return Example{ex}
	case []any:
		var out Example
		for _, item := range ex {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		if strings.TrimSpace(out.String()) == "" {
			return nil
		}
		return out
	case []string:
		return exampleFromValue(toAnySlice(ex))
	default:
		return nil
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// splitAtSeparator splits lines at the first line consisting of "---".
func splitAtSeparator(lines []string) (meta, example []string, found bool) {
	for i, l := range lines {
		if strings.TrimSpace(l) == separatorLine {
			return lines[:i], lines[i+1:], true
		}
	}
	return lines, nil, false
}

// dedentBlock dedents a block body. The first line is the remainder of the
// opener line; it is trimmed on its own and does not take part in computing
// the common indentation.
func dedentBlock(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	out = append(out, strings.TrimSpace(lines[0]))
	return append(out, dedent(lines[1:])...)
}

// dedent removes the common leading whitespace of all non-blank lines and
// trailing whitespace of every line.
func dedent(lines []string) []string {
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if indent > 0 && len(l) >= indent {
			l = l[indent:]
		}
		out[i] = l
	}
	return out
}

// trimBlankLines drops leading and trailing blank lines.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// orDiscard returns logger, or a logger that drops everything when nil.
func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
