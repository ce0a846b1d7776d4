package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// noGlyph is the placeholder some decomposition datasets emit for components
// that have no standalone glyph. Such entries are useless for curriculum
// sequencing; when the radical-level list contains one, the graphical-level
// list is used to fill in the gap.
const noGlyph = "No glyph available"

// decompositionEntry is the raw per-character decomposition record:
// radical-level components plus a finer graphical-level fallback.
type decompositionEntry struct {
	Radical   []string `json:"radical"`
	Graphical []string `json:"graphical"`
}

// fileData is the on-disk layout of the dictionary dataset.
type fileData struct {
	Entries        map[string][]Entry            `json:"entries"`
	Decompositions map[string]decompositionEntry `json:"decompositions"`
	Radicals       map[string]string             `json:"radicals"`
}

// File is a Dictionary and Decomposer backed by a single JSON dataset loaded
// into memory. Lookups are read-only after construction; the mutex guards
// against future code that might mutate the maps.
type File struct {
	mu   sync.RWMutex
	data fileData
}

// LoadFile reads a dictionary dataset from path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var data fileData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	if data.Entries == nil {
		data.Entries = map[string][]Entry{}
	}
	if data.Decompositions == nil {
		data.Decompositions = map[string]decompositionEntry{}
	}
	if data.Radicals == nil {
		data.Radicals = map[string]string{}
	}
	return &File{data: data}, nil
}

// NewFromData builds a File from already-parsed maps. Intended for tests and
// embedded fixture datasets.
func NewFromData(entries map[string][]Entry, decompositions map[string][]string, radicals map[string]string) *File {
	data := fileData{
		Entries:        entries,
		Decompositions: map[string]decompositionEntry{},
		Radicals:       radicals,
	}
	if data.Entries == nil {
		data.Entries = map[string][]Entry{}
	}
	if data.Radicals == nil {
		data.Radicals = map[string]string{}
	}
	for char, comps := range decompositions {
		data.Decompositions[char] = decompositionEntry{Radical: comps}
	}
	return &File{data: data}
}

// LookupDefinition implements Dictionary.
func (f *File) LookupDefinition(term string) ([]Entry, error) {
	f.mu.RLock()
	entries, ok := f.data.Entries[term]
	f.mu.RUnlock()
	if !ok || len(entries) == 0 {
		return nil, ErrNotFound
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Decompose implements Decomposer. The returned list is normalised: the
// character itself and glyphless placeholders are removed, duplicates are
// dropped while preserving order, and the graphical-level components stand in
// when the radical level contains a glyphless placeholder.
func (f *File) Decompose(char string) ([]string, error) {
	f.mu.RLock()
	entry, ok := f.data.Decompositions[char]
	f.mu.RUnlock()
	if !ok {
		return nil, ErrNoDecomposition
	}

	components := make([]string, 0, len(entry.Radical))
	seen := make(map[string]struct{})
	add := func(c string) {
		if c == "" || c == char || c == noGlyph {
			return
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		components = append(components, c)
	}

	hadNoGlyph := false
	for _, c := range entry.Radical {
		if c == noGlyph {
			hadNoGlyph = true
		}
		add(c)
	}
	if hadNoGlyph {
		for _, c := range entry.Graphical {
			add(c)
		}
	}
	return components, nil
}

// RadicalMeaning implements Decomposer. Unknown components are not an error;
// they get a generic placeholder meaning, matching how downstream tables
// label unglossed components.
func (f *File) RadicalMeaning(component string) (string, error) {
	f.mu.RLock()
	meaning := f.data.Radicals[component]
	f.mu.RUnlock()
	if meaning == "" || meaning == component {
		return fmt.Sprintf("Component %s", component), nil
	}
	return meaning, nil
}
