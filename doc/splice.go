package doc

import "sort"

// Edit replaces one source span with Text. A zero-width span is an
// insertion at Span.Start.
type Edit struct {
	Span Span
	Text []byte
}

// Splice applies non-overlapping edits to the document's source bytes,
// reproducing everything outside the edited spans verbatim. This is the
// serialization core of both dialects: a full tree-to-text regeneration
// would risk reformatting untouched content, so untouched bytes come
// straight from the source and only edited value tokens are replaced.
func Splice(d *Document, edits []Edit) []byte {
	es := make([]Edit, len(edits))
	copy(es, edits)
	sort.Slice(es, func(i, j int) bool {
		if es[i].Span.Start != es[j].Span.Start {
			return es[i].Span.Start < es[j].Span.Start
		}
		return es[i].Span.End < es[j].Span.End
	})
	out := make([]byte, 0, len(d.raw)+grow(es))
	prev := 0
	for _, e := range es {
		out = append(out, d.raw[prev:e.Span.Start]...)
		out = append(out, e.Text...)
		prev = e.Span.End
	}
	return append(out, d.raw[prev:]...)
}

func grow(es []Edit) int {
	n := 0
	for _, e := range es {
		n += len(e.Text)
	}
	return n
}

// DirtyEdits returns the value replacements for every modified field
// that exists in the source.
func DirtyEdits(d *Document) []Edit {
	var res []Edit
	for _, g := range d.Groups {
		for _, f := range g.Fields {
			if !f.Dirty() || !f.Span.InSource() {
				continue
			}
			res = append(res, Edit{Span: f.Span, Text: []byte(f.Value)})
		}
	}
	return res
}
