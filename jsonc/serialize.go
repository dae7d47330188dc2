package jsonc

import (
	"bytes"
	"fmt"

	"github.com/lmutools/cfged/doc"
)

// Serialize reconstructs source text for d. Untouched fields come from
// the original bytes verbatim; modified fields have only their value
// token replaced, leaving comments, descriptions and surrounding
// formatting alone. Fields appended after parse are rendered on their
// own comma-led line just above their group's closing brace.
func Serialize(d *doc.Document) ([]byte, error) {
	edits := doc.DirtyEdits(d)
	for _, g := range d.Groups {
		var added []*doc.Field
		for _, f := range g.Fields {
			if !f.Span.InSource() {
				added = append(added, f)
			}
		}
		if len(added) == 0 {
			continue
		}
		if !g.Span.InSource() {
			return nil, fmt.Errorf("%w: %q", ErrNewGroup, g.Name)
		}
		pos := d.PosDoc()
		ln, _ := pos.LineCol(g.Span.End)
		ls, _ := pos.LineSpan(ln)
		indent := leadingWS(pos.Line(ln))
		var b bytes.Buffer
		for _, f := range added {
			fmt.Fprintf(&b, "%s  , %q: %s\n", indent, f.Key, f.Value)
		}
		edits = append(edits, doc.Edit{
			Span: doc.Span{Start: ls, End: ls},
			Text: b.Bytes(),
		})
	}
	return doc.Splice(d, edits), nil
}

func leadingWS(line []byte) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return string(line[:i])
}
