package compare

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
)

const left = `[VIDEO]
Fullscreen=on
WindowWidth=1920
Shadows=3

[AUDIO]
Volume=0.8
`

// AUDIO comes first here; ordering must not matter
const right = `[AUDIO]
Volume=0.8
Mute=0

[VIDEO]
Fullscreen=1
WindowWidth=2560
`

func parse(t *testing.T, in string) *doc.Document {
	t.Helper()
	d, err := ini.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDocuments(t *testing.T) {
	diffs := Documents(parse(t, left), parse(t, right))

	byKey := map[string]Difference{}
	for _, d := range diffs {
		byKey[d.Group+"."+d.Key] = d
	}
	if len(diffs) != 4 {
		t.Fatalf("diffs = %d, want 4: %+v", len(diffs), diffs)
	}

	ww := byKey["VIDEO.WindowWidth"]
	if ww.Kind != ValueChanged || ww.A != "1920" || ww.B != "2560" {
		t.Errorf("WindowWidth = %+v", ww)
	}
	if len(ww.Edits) == 0 {
		t.Error("WindowWidth missing character edits")
	}

	// same meaning, different literal; still a value change
	fs := byKey["VIDEO.Fullscreen"]
	if fs.Kind != ValueChanged || fs.A != "on" || fs.B != "1" {
		t.Errorf("Fullscreen = %+v", fs)
	}

	sh := byKey["VIDEO.Shadows"]
	if sh.Kind != FieldRemoved || sh.A != "3" || sh.B != "" {
		t.Errorf("Shadows = %+v", sh)
	}

	mu := byKey["AUDIO.Mute"]
	if mu.Kind != FieldAdded || mu.B != "0" {
		t.Errorf("Mute = %+v", mu)
	}
}

func TestDocumentsOrder(t *testing.T) {
	diffs := Documents(parse(t, left), parse(t, right))
	var keys []string
	for _, d := range diffs {
		keys = append(keys, d.Key)
	}
	// left order first, right-only additions last
	want := []string{"Fullscreen", "WindowWidth", "Shadows", "Mute"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order = %v, want %v", keys, want)
		}
	}
}

func TestIdenticalDocuments(t *testing.T) {
	if diffs := Documents(parse(t, left), parse(t, left)); len(diffs) != 0 {
		t.Errorf("self-compare produced %d diffs", len(diffs))
	}
}

func TestEditsReconstruct(t *testing.T) {
	diffs := Documents(parse(t, left), parse(t, right))
	for _, d := range diffs {
		if d.Kind != ValueChanged {
			continue
		}
		var a, b string
		for _, e := range d.Edits {
			switch e.Type {
			case diffmatchpatch.DiffDelete:
				a += e.Text
			case diffmatchpatch.DiffInsert:
				b += e.Text
			case diffmatchpatch.DiffEqual:
				a += e.Text
				b += e.Text
			}
		}
		if a != d.A || b != d.B {
			t.Errorf("%s.%s edits reconstruct to %q/%q", d.Group, d.Key, a, b)
		}
	}
}
