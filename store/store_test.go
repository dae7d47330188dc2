package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
	"github.com/lmutools/cfged/jsonc"
)

const jsonSample = `{
  "GRAPHICS":
  {
    "Shadows":3
  }
}
`

const iniSample = `[VIDEO]
Fullscreen=1
`

func docs(t *testing.T) (*doc.Document, *doc.Document) {
	t.Helper()
	jd, err := jsonc.Parse([]byte(jsonSample))
	if err != nil {
		t.Fatal(err)
	}
	id, err := ini.Parse([]byte(iniSample))
	if err != nil {
		t.Fatal(err)
	}
	return jd, id
}

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saved"), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSaveAndList(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("quali", jd, id); err != nil {
		t.Fatal(err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"quali", "race"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	jsonPath, _ := s.Paths("race")
	if filepath.Base(jsonPath) != "conf_race_settings.json" {
		t.Errorf("json path = %q", jsonPath)
	}
}

func TestIncompletePairHidden(t *testing.T) {
	s := open(t)
	jd, _ := docs(t)
	if err := s.Save("half", jd, nil); err != nil {
		t.Fatal(err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("incomplete pair listed: %v", names)
	}
	if err := s.Load("half"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("load err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	activeJSON := filepath.Join(s.ActiveDir, s.JSONName)
	activeINI := filepath.Join(s.ActiveDir, s.ININame)
	if err := os.WriteFile(activeJSON, []byte(`{"OLD":{"K":1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(activeINI, []byte("[OLD]\nK=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Load("race"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(activeJSON)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != jsonSample {
		t.Errorf("active json = %q", got)
	}
	bak, err := os.ReadFile(activeJSON + ".before_load")
	if err != nil {
		t.Fatal(err)
	}
	if string(bak) != `{"OLD":{"K":1}}` {
		t.Errorf("pre-load backup = %q", bak)
	}
}

func TestLoadMissing(t *testing.T) {
	s := open(t)
	if err := s.Load("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("race"); err != nil {
		t.Fatal(err)
	}
	names, _ := s.List()
	if len(names) != 0 {
		t.Errorf("deleted pair still listed: %v", names)
	}
	if _, err := s.Info("race"); !errors.Is(err, ErrNotFound) {
		t.Errorf("info err = %v", err)
	}
	// deleting again is not an error
	if err := s.Delete("race"); err != nil {
		t.Error(err)
	}
}

func TestInfo(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	info, err := s.Info("race")
	if err != nil {
		t.Fatal(err)
	}
	if info.JSONFile != "conf_race_settings.json" || info.INIFile != "conf_race_Config_DX11.ini" {
		t.Errorf("info files = %q %q", info.JSONFile, info.INIFile)
	}
	if info.JSONSize != int64(len(jsonSample)) || info.INISize != int64(len(iniSample)) {
		t.Errorf("info sizes = %d %d", info.JSONSize, info.INISize)
	}
	if info.Created.IsZero() {
		t.Error("created time missing")
	}
}

func TestMetadataPersists(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	reopened, err := Open(s.Root, s.ActiveDir)
	if err != nil {
		t.Fatal(err)
	}
	info, err := reopened.Info("race")
	if err != nil {
		t.Fatal(err)
	}
	if info.JSONFile != "conf_race_settings.json" {
		t.Errorf("reopened info = %+v", info)
	}
}

func TestResaveKeepsCreated(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	first := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.meta.Configurations["race"].Created = first
	if err := s.Save("race", jd, id); err != nil {
		t.Fatal(err)
	}
	info, err := s.Info("race")
	if err != nil {
		t.Fatal(err)
	}
	if !info.Created.Equal(first) {
		t.Errorf("Created = %v, want first save time %v", info.Created, first)
	}
}

func TestBadName(t *testing.T) {
	s := open(t)
	jd, id := docs(t)
	for _, name := range []string{"", "a/b", `a\b`} {
		if err := s.Save(name, jd, id); !errors.Is(err, ErrBadName) {
			t.Errorf("Save(%q) err = %v", name, err)
		}
	}
}
