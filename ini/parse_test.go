package ini

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/token"
)

const sample = `// global header note
LeadingKey=5

[VIDEO]
Fullscreen=on // use exclusive fullscreen
// width of the back buffer
WindowWidth=1920
Shadows = 3 // quality preset
Ratio=(0.609, 0.343, 0.457)

[AUDIO]
Volume=0.8

[VIDEO]
PostFX=2
`

func mustParse(t *testing.T, in string) *doc.Document {
	t.Helper()
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseOrder(t *testing.T) {
	d := mustParse(t, sample)
	var groups []string
	for _, gv := range doc.ListGroups(d) {
		groups = append(groups, gv.Name)
	}
	if diff := cmp.Diff([]string{"", "VIDEO", "AUDIO"}, groups); diff != "" {
		t.Errorf("group order (-want +got):\n%s", diff)
	}
	fvs, _ := doc.ListFields(d, "VIDEO")
	var keys []string
	for _, fv := range fvs {
		keys = append(keys, fv.Key)
	}
	want := []string{"Fullscreen", "WindowWidth", "Shadows", "Ratio", "PostFX"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
}

func TestComments(t *testing.T) {
	d := mustParse(t, sample)
	if f := d.Group("").Field("LeadingKey"); f.Comment != "global header note" {
		t.Errorf("leading comment = %q", f.Comment)
	}
	v := d.Group("VIDEO")
	if f := v.Field("Fullscreen"); f.Comment != "use exclusive fullscreen" {
		t.Errorf("trailing comment = %q", f.Comment)
	}
	if f := v.Field("WindowWidth"); f.Comment != "width of the back buffer" {
		t.Errorf("standalone comment = %q", f.Comment)
	}
}

func TestBooleans(t *testing.T) {
	d := mustParse(t, sample)
	f := d.Group("VIDEO").Field("Fullscreen")
	if f.Shape != doc.Bool || f.Bool == nil || !*f.Bool {
		t.Errorf("Fullscreen shape=%v bool=%v", f.Shape, f.Bool)
	}
	// the literal is retained, never normalized
	if f.Value != "on" {
		t.Errorf("Fullscreen literal = %q", f.Value)
	}
	if f := d.Group("VIDEO").Field("WindowWidth"); f.Shape == doc.Bool {
		t.Error("1920 tagged boolean")
	}
}

func TestValueTrim(t *testing.T) {
	d := mustParse(t, sample)
	if f := d.Group("VIDEO").Field("Shadows"); f.Value != "3" {
		t.Errorf("Shadows = %q", f.Value)
	}
	if f := d.Group("VIDEO").Field("Ratio"); f.Value != "(0.609, 0.343, 0.457)" {
		t.Errorf("Ratio = %q", f.Value)
	}
}

func TestDuplicateSection(t *testing.T) {
	d := mustParse(t, sample)
	var dse *DuplicateSectionError
	found := false
	for _, w := range d.Warnings {
		if errors.As(w, &dse) {
			found = true
		}
	}
	if !found || dse.Name != "VIDEO" {
		t.Errorf("warnings = %v", d.Warnings)
	}
	if f := d.Group("VIDEO").Field("PostFX"); f == nil || f.Value != "2" {
		t.Error("later occurrence fields not appended to first group")
	}
}

func TestRoundTrip(t *testing.T) {
	d := mustParse(t, sample)
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte(sample)) {
		t.Errorf("round trip differs:\n%s", out)
	}
}

func TestSelectiveEdit(t *testing.T) {
	d := mustParse(t, sample)
	d.Group("AUDIO").Field("Volume").Value = "0.5"
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	orig := bytes.Split([]byte(sample), []byte("\n"))
	got := bytes.Split(out, []byte("\n"))
	if len(orig) != len(got) {
		t.Fatalf("line count changed")
	}
	changed := 0
	for i := range orig {
		if !bytes.Equal(orig[i], got[i]) {
			changed++
			if string(got[i]) != "Volume=0.5" {
				t.Errorf("unexpected change: %q", got[i])
			}
		}
	}
	if changed != 1 {
		t.Errorf("changed lines = %d, want 1", changed)
	}
}

func TestEditKeepsTrailingComment(t *testing.T) {
	d := mustParse(t, sample)
	d.Group("VIDEO").Field("Shadows").Value = "0"
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("Shadows = 0 // quality preset")) {
		t.Errorf("comment or spacing lost:\n%s", out)
	}
}

func TestAppendedField(t *testing.T) {
	d := mustParse(t, sample)
	g := d.Group("AUDIO")
	if err := g.AddField(&doc.Field{Key: "Mute", Value: "0", Original: "0"}); err != nil {
		t.Fatal(err)
	}
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	re, err := Parse(out)
	if err != nil {
		t.Fatalf("appended output does not reparse: %v\n%s", err, out)
	}
	if f := re.Group("AUDIO").Field("Mute"); f == nil || f.Value != "0" {
		t.Errorf("Mute not in AUDIO after reparse:\n%s", out)
	}
	// still ahead of the second VIDEO block's section header
	if !bytes.Contains(out, []byte("Volume=0.8\nMute=0\n")) {
		t.Errorf("appended placement:\n%s", out)
	}
}

func TestNewSection(t *testing.T) {
	d := mustParse(t, sample)
	g, err := d.AddGroup("INPUT")
	if err != nil {
		t.Fatal(err)
	}
	_ = g.AddField(&doc.Field{Key: "FFB", Value: "1", Original: "1"})
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(out, []byte("\n[INPUT]\nFFB=1\n")) {
		t.Errorf("new section placement:\n%s", out)
	}
}

func TestMalformed(t *testing.T) {
	var me *token.MalformedLineError
	if _, err := Parse([]byte("[VIDEO]\ngarbage line\n")); !errors.As(err, &me) {
		t.Fatalf("err = %v", err)
	}
	if me.Line != 2 || me.Text != "garbage line" {
		t.Errorf("malformed = %+v", me)
	}
	if _, err := Parse([]byte("[unclosed\n")); !errors.As(err, &me) {
		t.Errorf("unclosed header err = %v", err)
	}
}

func TestEmptyValue(t *testing.T) {
	d := mustParse(t, "[S]\nKey=\n")
	f := d.Group("S").Field("Key")
	if f.Value != "" {
		t.Errorf("value = %q", f.Value)
	}
	f.Value = "7"
	out, err := Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte("[S]\nKey=7\n")) {
		t.Errorf("out = %q", out)
	}
}
