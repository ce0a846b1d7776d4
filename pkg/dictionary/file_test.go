package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAndLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.json")
	content := `{
		"entries": {
			"好": [{"pinyin": "hao3", "definition": "good"}],
			"王": [{"pinyin": "wang2", "definition": "surname Wang; king"}]
		},
		"decompositions": {
			"好": {"radical": ["女", "子"]},
			"树": {"radical": ["木", "No glyph available"], "graphical": ["木", "又", "寸"]}
		},
		"radicals": {"女": "woman"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	entries, err := d.LookupDefinition("好")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(entries) != 1 || entries[0].Definition != "good" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	if _, err := d.LookupDefinition("犬"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecomposeNormalises(t *testing.T) {
	d := NewFromData(nil, map[string][]string{
		"好": {"女", "子", "好", "女"},
	}, nil)

	comps, err := d.Decompose("好")
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	// self-reference and duplicate removed, order preserved
	if len(comps) != 2 || comps[0] != "女" || comps[1] != "子" {
		t.Fatalf("unexpected components: %v", comps)
	}

	if _, err := d.Decompose("犬"); !errors.Is(err, ErrNoDecomposition) {
		t.Fatalf("expected ErrNoDecomposition, got %v", err)
	}
}

func TestDecomposeGraphicalFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.json")
	content := `{
		"decompositions": {
			"树": {"radical": ["木", "No glyph available"], "graphical": ["木", "又", "寸"]}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	comps, err := d.Decompose("树")
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	want := []string{"木", "又", "寸"}
	if len(comps) != len(want) {
		t.Fatalf("got %v, want %v", comps, want)
	}
	for i := range want {
		if comps[i] != want[i] {
			t.Fatalf("got %v, want %v", comps, want)
		}
	}
}

func TestRadicalMeaningFallback(t *testing.T) {
	d := NewFromData(nil, nil, map[string]string{"女": "woman", "口": "口"})
	m, _ := d.RadicalMeaning("女")
	if m != "woman" {
		t.Fatalf("got %q", m)
	}
	// meaning equal to the component itself is treated as missing
	m, _ = d.RadicalMeaning("口")
	if m != "Component 口" {
		t.Fatalf("got %q", m)
	}
	m, _ = d.RadicalMeaning("一")
	if m != "Component 一" {
		t.Fatalf("got %q", m)
	}
}

func TestCleanSurname(t *testing.T) {
	cases := []struct {
		in       string
		want     string
		wantFlag bool
	}{
		{"surname Wang; king", "king", true},
		{"good; fine", "good; fine", false},
		{"", "", false},
		{"to hold/surname Zhang/to open", "to hold/to open", true},
		{"surname Li", "", true},
	}
	for _, c := range cases {
		got, flag := CleanSurname(c.in)
		if got != c.want || flag != c.wantFlag {
			t.Errorf("CleanSurname(%q) = (%q, %v), want (%q, %v)", c.in, got, flag, c.want, c.wantFlag)
		}
	}
}
