// Package compare diffs two parsed documents field by field.
//
// Comparison is by (group, key) identity, not by byte position, so two
// files that order their sections differently still compare cleanly.
// Value text is compared verbatim.
package compare

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lmutools/cfged/doc"
)

type Kind int

const (
	ValueChanged Kind = iota
	ShapeChanged
	FieldAdded
	FieldRemoved
)

func (k Kind) String() string {
	switch k {
	case ValueChanged:
		return "changed"
	case ShapeChanged:
		return "reshaped"
	case FieldAdded:
		return "added"
	case FieldRemoved:
		return "removed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Difference is one divergence between the two documents. A holds the
// first document's value, B the second's; for added or removed fields
// the absent side is empty. Edits carries a character-level diff for
// value changes only.
type Difference struct {
	Group       string
	Key         string
	Kind        Kind
	A           string
	B           string
	Shape       doc.Shape
	Description string
	Edits       []diffmatchpatch.Diff
}

// Documents compares a against b. Results follow a's document order,
// with fields present only in b appended in b's order.
func Documents(a, b *doc.Document) []Difference {
	dmp := diffmatchpatch.New()
	var out []Difference
	for _, ga := range a.Groups {
		gb := b.Group(ga.Name)
		for _, fa := range ga.Fields {
			var fb *doc.Field
			if gb != nil {
				fb = gb.Field(fa.Key)
			}
			if fb == nil {
				out = append(out, Difference{
					Group:       ga.Name,
					Key:         fa.Key,
					Kind:        FieldRemoved,
					A:           fa.Value,
					Shape:       fa.Shape,
					Description: fa.Description,
				})
				continue
			}
			if fa.Value != fb.Value {
				edits := dmp.DiffMain(fa.Value, fb.Value, false)
				edits = dmp.DiffCleanupSemantic(edits)
				out = append(out, Difference{
					Group:       ga.Name,
					Key:         fa.Key,
					Kind:        ValueChanged,
					A:           fa.Value,
					B:           fb.Value,
					Shape:       fb.Shape,
					Description: description(fa, fb),
					Edits:       edits,
				})
				continue
			}
			if fa.Shape != fb.Shape {
				out = append(out, Difference{
					Group:       ga.Name,
					Key:         fa.Key,
					Kind:        ShapeChanged,
					A:           fa.Value,
					B:           fb.Value,
					Shape:       fb.Shape,
					Description: description(fa, fb),
				})
			}
		}
	}
	for _, gb := range b.Groups {
		ga := a.Group(gb.Name)
		for _, fb := range gb.Fields {
			if ga != nil && ga.Field(fb.Key) != nil {
				continue
			}
			out = append(out, Difference{
				Group:       gb.Name,
				Key:         fb.Key,
				Kind:        FieldAdded,
				B:           fb.Value,
				Shape:       fb.Shape,
				Description: fb.Description,
			})
		}
	}
	return out
}

func description(a, b *doc.Field) string {
	if a.Description != "" {
		return a.Description
	}
	return b.Description
}
