package doc

import (
	"fmt"

	"github.com/lmutools/cfged/token"
)

type Shape int

const (
	Scalar Shape = iota
	Array
	Object
	Bool
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Object:
		return "object"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Span is an absolute [Start, End) byte range in a Document's source.
// The zero Span marks fields and groups added after parse.
type Span struct {
	Start, End int
}

func (s Span) InSource() bool {
	return s.End > 0
}

type Document struct {
	Dialect Dialect
	Path    string
	Groups  []*Group

	// Warnings collects non-fatal parse signals, e.g. duplicate INI
	// sections.
	Warnings []error

	raw    []byte
	pos    *token.PosDoc
	byName map[string]*Group
}

func New(dialect Dialect, raw []byte) *Document {
	return &Document{
		Dialect: dialect,
		raw:     raw,
		pos:     token.NewDoc(raw),
		byName:  map[string]*Group{},
	}
}

func (d *Document) Raw() []byte {
	return d.raw
}

func (d *Document) RawLen() int {
	return len(d.raw)
}

func (d *Document) PosDoc() *token.PosDoc {
	return d.pos
}

func (d *Document) Group(name string) *Group {
	return d.byName[name]
}

func (d *Document) Warn(err error) {
	d.Warnings = append(d.Warnings, err)
}

// AddGroup appends a group, preserving first-seen order. Group names
// are unique within a Document.
func (d *Document) AddGroup(name string) (*Group, error) {
	if _, ok := d.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDupGroup, name)
	}
	g := &Group{
		Name:  name,
		Index: len(d.Groups),
		doc:   d,
		byKey: map[string]*Field{},
	}
	d.Groups = append(d.Groups, g)
	d.byName[name] = g
	return g, nil
}

type Group struct {
	Name  string
	Index int

	// Span covers the group's body in the source; Span.End is where a
	// serializer inserts fields appended after parse.
	Span Span

	Fields []*Field

	doc   *Document
	byKey map[string]*Field
}

func (g *Group) Field(key string) *Field {
	return g.byKey[key]
}

// AddField appends f, preserving first-seen order. Keys are unique
// within a Group.
func (g *Group) AddField(f *Field) error {
	if _, ok := g.byKey[f.Key]; ok {
		return fmt.Errorf("%w: %q in group %q", ErrDupKey, f.Key, g.Name)
	}
	g.Fields = append(g.Fields, f)
	g.byKey[f.Key] = f
	return nil
}

// Field is a single setting. Value and Original hold the raw literal
// source text of the value; no coercion or validation is ever applied
// to either.
type Field struct {
	Key      string
	Value    string
	Original string

	Shape       Shape
	Description string
	Comment     string

	// Bool is the normalized interpretation of a boolean-looking INI
	// value, for presentation only. The literal text is what persists.
	Bool *bool

	// Line is the 1-based source line where the value starts; Span the
	// value token's byte range. Both are zero for appended fields.
	Line int
	Span Span
}

func (f *Field) Dirty() bool {
	return f.Value != f.Original
}
