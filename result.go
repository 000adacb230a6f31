package styleguide

import "sync"

// Result is the outcome of one Render call.
type Result struct {
	// Document is the assembled style guide.
	Document string

	// Groups holds the records in presentation order.
	Groups []Group

	// Diagnostics lists recoverable problems: malformed blocks and
	// unresolved includes.
	Diagnostics []Diagnostic

	done    <-chan error
	once    sync.Once
	saveErr error
}

// Wait blocks until the output file is written and returns the write error.
// It returns nil immediately when no output file was requested.
// Wait may be called any number of times.
func (r *Result) Wait() error {
	r.once.Do(func() {
		if r.done != nil {
			r.saveErr = <-r.done
		}
	})
	return r.saveErr
}

// GroupIndex returns the groups keyed by name.
func (r *Result) GroupIndex() map[string][]Record {
	index := make(map[string][]Record, len(r.Groups))
	for _, g := range r.Groups {
		index[g.Name] = g.Records
	}
	return index
}

// Records returns every record in presentation order.
func (r *Result) Records() []Record {
	var out []Record
	for _, g := range r.Groups {
		out = append(out, g.Records...)
	}
	return out
}
