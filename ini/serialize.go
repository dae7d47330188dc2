package ini

import (
	"bytes"
	"fmt"

	"github.com/lmutools/cfged/doc"
)

// Serialize reconstructs source text for d, splicing current values
// over the spans of modified fields and leaving everything else
// byte-identical. Fields appended after parse go on their own line at
// the end of their section; whole new sections append at end of file.
func Serialize(d *doc.Document) ([]byte, error) {
	edits := doc.DirtyEdits(d)
	var tail bytes.Buffer
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
			if g.Name == "" {
				return nil, fmt.Errorf("%w: %q", ErrNoSection, added[0].Key)
			}
			fmt.Fprintf(&tail, "\n[%s]\n", g.Name)
			for _, f := range added {
				fmt.Fprintf(&tail, "%s=%s\n", f.Key, f.Value)
			}
			continue
		}
		var b bytes.Buffer
		for _, f := range added {
			fmt.Fprintf(&b, "\n%s=%s", f.Key, f.Value)
		}
		edits = append(edits, doc.Edit{
			Span: doc.Span{Start: g.Span.End, End: g.Span.End},
			Text: b.Bytes(),
		})
	}
	out := doc.Splice(d, edits)
	return append(out, tail.Bytes()...), nil
}
