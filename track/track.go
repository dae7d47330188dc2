package track

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
)

type Tracker struct {
	doc *doc.Document
}

// New wraps d. The per-field snapshots are the Original values the
// parser captured at load time.
func New(d *doc.Document) *Tracker {
	return &Tracker{doc: d}
}

func (t *Tracker) Document() *doc.Document {
	return t.doc
}

// Record maps a field identity to its value snapshots. Records exist
// only while the Document is open; they are derived, never persisted.
type Record struct {
	Group    string
	Key      string
	Original string
	Current  string
}

// SetValue updates the live value of (group, key). The field is dirty
// iff the new value differs from the original; setting the original
// back cleans it. The text is accepted verbatim.
func (t *Tracker) SetValue(group, key, value string) error {
	f, err := t.field(group, key)
	if err != nil {
		return err
	}
	f.Value = value
	t.retag(f)
	return nil
}

// Revert restores (group, key) to its snapshot.
func (t *Tracker) Revert(group, key string) error {
	f, err := t.field(group, key)
	if err != nil {
		return err
	}
	f.Value = f.Original
	t.retag(f)
	return nil
}

// RevertAll restores every field's snapshot.
func (t *Tracker) RevertAll() {
	for _, g := range t.doc.Groups {
		for _, f := range g.Fields {
			f.Value = f.Original
			t.retag(f)
		}
	}
}

// DirtyCount reports the number of currently modified fields.
func (t *Tracker) DirtyCount() int {
	n := 0
	for _, g := range t.doc.Groups {
		for _, f := range g.Fields {
			if f.Dirty() {
				n++
			}
		}
	}
	return n
}

// Records returns the modified fields in document order.
func (t *Tracker) Records() []Record {
	var res []Record
	for _, g := range t.doc.Groups {
		for _, f := range g.Fields {
			if !f.Dirty() {
				continue
			}
			res = append(res, Record{
				Group:    g.Name,
				Key:      f.Key,
				Original: f.Original,
				Current:  f.Value,
			})
		}
	}
	return res
}

// Snapshot makes every current value the new original, clearing all
// dirty flags. Called after a successful save.
func (t *Tracker) Snapshot() {
	for _, g := range t.doc.Groups {
		for _, f := range g.Fields {
			f.Original = f.Value
		}
	}
}

// ApplyMergePatch applies a JSON merge patch of the form
// {"group": {"key": value}} over the current values and routes every
// change through SetValue semantics. Only existing fields may be
// touched; deletions are not supported. Returns the number of fields
// whose value changed.
func (t *Tracker) ApplyMergePatch(patch []byte) (int, error) {
	cur := map[string]map[string]string{}
	for _, g := range t.doc.Groups {
		kv := map[string]string{}
		for _, f := range g.Fields {
			kv[f.Key] = f.Value
		}
		cur[g.Name] = kv
	}
	curJSON, err := json.Marshal(cur)
	if err != nil {
		return 0, err
	}
	merged, err := jsonpatch.MergePatch(curJSON, patch)
	if err != nil {
		return 0, fmt.Errorf("merge patch: %w", err)
	}
	var next map[string]map[string]json.RawMessage
	if err := json.Unmarshal(merged, &next); err != nil {
		return 0, fmt.Errorf("merge patch result: %w", err)
	}
	n := 0
	for gname, kv := range next {
		for key, raw := range kv {
			lit := t.literal(raw)
			f, err := t.field(gname, key)
			if err != nil {
				return n, err
			}
			if f.Value == lit {
				continue
			}
			f.Value = lit
			t.retag(f)
			n++
		}
	}
	return n, nil
}

func (t *Tracker) field(group, key string) (*doc.Field, error) {
	g := t.doc.Group(group)
	if g == nil {
		return nil, fmt.Errorf("%w: %q", doc.ErrNoGroup, group)
	}
	f := g.Field(key)
	if f == nil {
		return nil, fmt.Errorf("%w: %s.%s", doc.ErrNoField, group, key)
	}
	return f, nil
}

// literal renders a merge-patch JSON value as the dialect's raw
// literal text.
func (t *Tracker) literal(raw json.RawMessage) string {
	if t.doc.Dialect == doc.JSONC {
		return string(raw)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// retag refreshes the presentation shape after a value change. The
// value text itself is never altered.
func (t *Tracker) retag(f *doc.Field) {
	switch t.doc.Dialect {
	case doc.INI:
		if b, ok := ini.Bool(f.Value); ok {
			f.Shape = doc.Bool
			f.Bool = &b
			return
		}
		f.Shape = doc.Scalar
		f.Bool = nil
	case doc.JSONC:
		switch {
		case strings.HasPrefix(f.Value, "["):
			f.Shape = doc.Array
		case strings.HasPrefix(f.Value, "{"):
			f.Shape = doc.Object
		default:
			f.Shape = doc.Scalar
		}
	}
}
