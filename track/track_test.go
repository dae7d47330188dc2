package track

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
	"github.com/lmutools/cfged/jsonc"
)

const iniSample = `[VIDEO]
Fullscreen=on
WindowWidth=1920

[AUDIO]
Volume=0.8
`

const jsoncSample = `{
  "DRIVING AIDS":
  {
    "ABS":1, // antilock braking
    "FPS Limit":120
  }
}
`

func iniTracker(t *testing.T) *Tracker {
	t.Helper()
	d, err := ini.Parse([]byte(iniSample))
	if err != nil {
		t.Fatal(err)
	}
	return New(d)
}

func jsoncTracker(t *testing.T) *Tracker {
	t.Helper()
	d, err := jsonc.Parse([]byte(jsoncSample))
	if err != nil {
		t.Fatal(err)
	}
	return New(d)
}

func TestSetValueDirty(t *testing.T) {
	tr := iniTracker(t)
	if err := tr.SetValue("VIDEO", "WindowWidth", "2560"); err != nil {
		t.Fatal(err)
	}
	if n := tr.DirtyCount(); n != 1 {
		t.Errorf("DirtyCount = %d, want 1", n)
	}
	// setting the original text back cleans the field
	if err := tr.SetValue("VIDEO", "WindowWidth", "1920"); err != nil {
		t.Fatal(err)
	}
	if n := tr.DirtyCount(); n != 0 {
		t.Errorf("DirtyCount after toggle back = %d, want 0", n)
	}
}

func TestSetValueUnknown(t *testing.T) {
	tr := iniTracker(t)
	if err := tr.SetValue("VIDEO", "Nope", "1"); !errors.Is(err, doc.ErrNoField) {
		t.Errorf("err = %v", err)
	}
	if err := tr.SetValue("NOPE", "X", "1"); !errors.Is(err, doc.ErrNoGroup) {
		t.Errorf("err = %v", err)
	}
}

func TestRevert(t *testing.T) {
	tr := iniTracker(t)
	_ = tr.SetValue("AUDIO", "Volume", "0.2")
	if err := tr.Revert("AUDIO", "Volume"); err != nil {
		t.Fatal(err)
	}
	f := tr.Document().Group("AUDIO").Field("Volume")
	if f.Value != "0.8" || f.Dirty() {
		t.Errorf("after revert value=%q dirty=%v", f.Value, f.Dirty())
	}
}

func TestRevertAll(t *testing.T) {
	tr := iniTracker(t)
	_ = tr.SetValue("VIDEO", "Fullscreen", "off")
	_ = tr.SetValue("AUDIO", "Volume", "0")
	tr.RevertAll()
	if n := tr.DirtyCount(); n != 0 {
		t.Errorf("DirtyCount = %d, want 0", n)
	}
}

func TestRecordsOrder(t *testing.T) {
	tr := iniTracker(t)
	// set out of document order; records come back in document order
	_ = tr.SetValue("AUDIO", "Volume", "0.1")
	_ = tr.SetValue("VIDEO", "Fullscreen", "off")
	want := []Record{
		{Group: "VIDEO", Key: "Fullscreen", Original: "on", Current: "off"},
		{Group: "AUDIO", Key: "Volume", Original: "0.8", Current: "0.1"},
	}
	if diff := cmp.Diff(want, tr.Records()); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
}

func TestSnapshot(t *testing.T) {
	tr := iniTracker(t)
	_ = tr.SetValue("AUDIO", "Volume", "0.3")
	tr.Snapshot()
	if n := tr.DirtyCount(); n != 0 {
		t.Errorf("DirtyCount after snapshot = %d", n)
	}
	f := tr.Document().Group("AUDIO").Field("Volume")
	if f.Original != "0.3" {
		t.Errorf("Original = %q, want rebased value", f.Original)
	}
}

func TestRetagBool(t *testing.T) {
	tr := iniTracker(t)
	_ = tr.SetValue("VIDEO", "Fullscreen", "0")
	f := tr.Document().Group("VIDEO").Field("Fullscreen")
	if f.Shape != doc.Bool || f.Bool == nil || *f.Bool {
		t.Errorf("shape=%v bool=%v", f.Shape, f.Bool)
	}
	_ = tr.SetValue("VIDEO", "Fullscreen", "borderless")
	if f.Shape != doc.Scalar || f.Bool != nil {
		t.Errorf("retag off: shape=%v bool=%v", f.Shape, f.Bool)
	}
}

func TestMergePatchINI(t *testing.T) {
	tr := iniTracker(t)
	n, err := tr.ApplyMergePatch([]byte(`{"VIDEO":{"WindowWidth":"3440","Fullscreen":"on"},"AUDIO":{"Volume":0.5}}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("changed = %d, want 2", n)
	}
	if f := tr.Document().Group("VIDEO").Field("WindowWidth"); f.Value != "3440" {
		t.Errorf("WindowWidth = %q", f.Value)
	}
	// non-string scalars keep their plain literal form
	if f := tr.Document().Group("AUDIO").Field("Volume"); f.Value != "0.5" {
		t.Errorf("Volume = %q", f.Value)
	}
}

func TestMergePatchJSONC(t *testing.T) {
	tr := jsoncTracker(t)
	n, err := tr.ApplyMergePatch([]byte(`{"DRIVING AIDS":{"ABS":0}}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("changed = %d, want 1", n)
	}
	f := tr.Document().Group("DRIVING AIDS").Field("ABS")
	if f.Value != "0" {
		t.Errorf("ABS = %q", f.Value)
	}
	// strings stay valid JSON literals in this dialect
	if _, err := tr.ApplyMergePatch([]byte(`{"DRIVING AIDS":{"FPS Limit":"unlimited"}}`)); err != nil {
		t.Fatal(err)
	}
	if f := tr.Document().Group("DRIVING AIDS").Field("FPS Limit"); f.Value != `"unlimited"` {
		t.Errorf("FPS Limit = %q", f.Value)
	}
}

func TestMergePatchUnknownField(t *testing.T) {
	tr := iniTracker(t)
	if _, err := tr.ApplyMergePatch([]byte(`{"VIDEO":{"Bloom":"1"}}`)); !errors.Is(err, doc.ErrNoField) {
		t.Errorf("err = %v", err)
	}
}
