package doc

import "fmt"

// FieldView is the read-only projection the presentation layer
// consumes. Mutation goes through the change tracker, never through a
// view.
type FieldView struct {
	Group       string
	Key         string
	Value       string
	Original    string
	Description string
	Comment     string
	Shape       Shape
	Bool        *bool
	Dirty       bool
}

type GroupView struct {
	Name   string
	Fields []FieldView
}

// ListGroups returns group views in source order.
func ListGroups(d *Document) []GroupView {
	res := make([]GroupView, len(d.Groups))
	for i, g := range d.Groups {
		res[i] = GroupView{Name: g.Name, Fields: fieldViews(g)}
	}
	return res
}

// ListFields returns the field views of one group in source order.
func ListFields(d *Document, group string) ([]FieldView, error) {
	g := d.Group(group)
	if g == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoGroup, group)
	}
	return fieldViews(g), nil
}

func fieldViews(g *Group) []FieldView {
	res := make([]FieldView, len(g.Fields))
	for i, f := range g.Fields {
		res[i] = FieldView{
			Group:       g.Name,
			Key:         f.Key,
			Value:       f.Value,
			Original:    f.Original,
			Description: f.Description,
			Comment:     f.Comment,
			Shape:       f.Shape,
			Bool:        f.Bool,
			Dirty:       f.Dirty(),
		}
	}
	return res
}
