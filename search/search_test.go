package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmutools/cfged/jsonc"
)

const sample = `{
  "GRAPHICS":
  {
    "Shadows":3, //#: "Shadow quality, 0 disables"
    "Shader Level":2,
    "FPS Limit":120 //#: "Upper bound on frame rate"
  },
  "AUDIO":
  {
    "Volume":"loud"
  }
}
`

func buildIndex(t *testing.T) *Index {
	t.Helper()
	d, err := jsonc.Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	return New(d)
}

func TestNameMatch(t *testing.T) {
	ix := buildIndex(t)
	res := ix.Search("shadow")
	if len(res) != 1 {
		t.Fatalf("results = %+v", res)
	}
	r := res[0]
	if r.Key != "Shadows" || r.Kind != NameMatch {
		t.Errorf("result = %+v", r)
	}
	// key-prefix match carries the top score tier
	if r.Score < 200 {
		t.Errorf("score = %v", r.Score)
	}
}

func TestNameBeatsValue(t *testing.T) {
	d, err := jsonc.Parse([]byte(`{"A":{"Level":1,"Detail":"level high"}}`))
	if err != nil {
		t.Fatal(err)
	}
	res := New(d).Search("level")
	if len(res) != 2 {
		t.Fatalf("results = %+v", res)
	}
	if res[0].Key != "Level" || res[0].Kind != NameMatch {
		t.Errorf("top = %+v", res[0])
	}
	if res[1].Key != "Detail" || res[1].Kind != ValueMatch {
		t.Errorf("second = %+v", res[1])
	}
}

func TestDescriptionMatch(t *testing.T) {
	ix := buildIndex(t)
	res := ix.Search("frame")
	if len(res) != 1 {
		t.Fatalf("results = %+v", res)
	}
	want := Result{
		Group:       "GRAPHICS",
		Key:         "FPS Limit",
		Kind:        DescriptionMatch,
		Matched:     "Upper bound on frame rate",
		Value:       "120",
		Description: "Upper bound on frame rate",
	}
	got := res[0]
	if got.Score < 75 || got.Score >= 100 {
		t.Errorf("score = %v", got.Score)
	}
	got.Score = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
}

func TestValueMatch(t *testing.T) {
	ix := buildIndex(t)
	res := ix.Search("loud")
	if len(res) != 1 || res[0].Kind != ValueMatch || res[0].Key != "Volume" {
		t.Fatalf("results = %+v", res)
	}
}

func TestShortQuery(t *testing.T) {
	ix := buildIndex(t)
	if res := ix.Search("s"); res != nil {
		t.Errorf("single-char query returned %d results", len(res))
	}
}

func TestPrefixOnly(t *testing.T) {
	ix := buildIndex(t)
	// suffixes do not match; the index is prefix-based
	if res := ix.Search("hadows"); len(res) != 0 {
		t.Errorf("suffix query matched: %+v", res)
	}
}

func TestSuggest(t *testing.T) {
	ix := buildIndex(t)
	got := ix.Suggest("sha", 10)
	want := []string{"shader", "shadow", "shadows"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("suggestions (-want +got):\n%s", diff)
	}
}

func TestMultipleDocuments(t *testing.T) {
	d1, err := jsonc.Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	d2, err := jsonc.Parse([]byte(`{"CONTROLS":{"Steering Help":1}}`))
	if err != nil {
		t.Fatal(err)
	}
	ix := New(d1, d2)
	if res := ix.Search("steering"); len(res) != 1 || res[0].Group != "CONTROLS" {
		t.Fatalf("results = %+v", res)
	}
	if res := ix.Search("volume"); len(res) != 1 {
		t.Fatalf("results = %+v", res)
	}
}
