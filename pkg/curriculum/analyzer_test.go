package curriculum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tianhanzi/tian/pkg/dictionary"
)

// fakeDict and fakeDecomp implement the dictionary interfaces with fixture
// data so the core is testable without the real dataset.
type fakeDict struct {
	entries map[string][]dictionary.Entry
}

func (f *fakeDict) LookupDefinition(term string) ([]dictionary.Entry, error) {
	entries, ok := f.entries[term]
	if !ok {
		return nil, dictionary.ErrNotFound
	}
	return entries, nil
}

type fakeDecomp struct {
	comps    map[string][]string
	meanings map[string]string
}

func (f *fakeDecomp) Decompose(char string) ([]string, error) {
	comps, ok := f.comps[char]
	if !ok {
		return nil, dictionary.ErrNoDecomposition
	}
	return comps, nil
}

func (f *fakeDecomp) RadicalMeaning(component string) (string, error) {
	if m, ok := f.meanings[component]; ok {
		return m, nil
	}
	return "Component " + component, nil
}

func entry(p, d string) []dictionary.Entry {
	return []dictionary.Entry{{Pinyin: p, Definition: d}}
}

func TestAnalyzeTalliesUsage(t *testing.T) {
	dict := &fakeDict{entries: map[string][]dictionary.Entry{
		"好": entry("hao3", "good"),
		"妈": entry("ma1", "mother"),
		"吗": entry("ma5", "question particle"),
	}}
	dec := &fakeDecomp{comps: map[string][]string{
		"好": {"女", "子"},
		"妈": {"女", "马"},
		"吗": {"口", "马"},
	}}

	a := NewAnalyzer(dict, dec, nil)
	hanzi, stats, err := a.Analyze(context.Background(), []string{"好", "妈", "吗"}, map[string]int{"好": 1, "妈": 1, "吗": 2})
	require.NoError(t, err)

	require.Len(t, hanzi, 3)
	assert.Equal(t, 2, stats.Usage["女"])
	assert.Equal(t, 2, stats.Usage["马"])
	assert.Equal(t, 1, stats.Usage["口"])
	assert.Equal(t, 2, stats.TierUsage["女"][1])
	assert.Equal(t, 1, stats.TierUsage["马"][1])
	assert.Equal(t, 1, stats.TierUsage["马"][2])
	assert.Equal(t, "hǎo", hanzi["好"].Pinyin)
	assert.Equal(t, "good", hanzi["好"].Meaning)
}

func TestAnalyzeSkipsAndCounts(t *testing.T) {
	dict := &fakeDict{entries: map[string][]dictionary.Entry{
		"好": entry("hao3", "good"),
		"怪": entry("guai4", "strange"),
	}}
	dec := &fakeDecomp{comps: map[string][]string{
		"好": {"女", "子"},
		// 怪 has no decomposition entry
	}}

	a := NewAnalyzer(dict, dec, nil)
	hanzi, stats, err := a.Analyze(context.Background(), []string{"好", "怪", "犬"}, nil)
	require.NoError(t, err)

	assert.Len(t, hanzi, 1)
	assert.Equal(t, 1, stats.SkippedNoDefinition, "犬 has no dictionary entry")
	assert.Equal(t, 1, stats.SkippedNoDecomposition, "怪 has no decomposition")
}

func TestAnalyzeSelfReferenceGuard(t *testing.T) {
	dict := &fakeDict{entries: map[string][]dictionary.Entry{
		"一": entry("yi1", "one"),
	}}
	dec := &fakeDecomp{comps: map[string][]string{
		"一": {"一"}, // degenerate: decomposes to itself
	}}

	a := NewAnalyzer(dict, dec, nil)
	hanzi, stats, err := a.Analyze(context.Background(), []string{"一"}, nil)
	require.NoError(t, err)

	require.Contains(t, hanzi, "一")
	assert.Equal(t, 0, hanzi["一"].ComponentCount())
	assert.Empty(t, stats.Usage)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer(&fakeDict{}, &fakeDecomp{}, nil)
	_, _, err := a.Analyze(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyzeDeterministicAcrossWorkerCounts(t *testing.T) {
	entries := map[string][]dictionary.Entry{}
	comps := map[string][]string{}
	chars := []string{"好", "妈", "吗", "骂", "嘛", "妹", "姐", "始"}
	for _, c := range chars {
		entries[c] = entry("x1", "meaning")
	}
	comps["好"] = []string{"女", "子"}
	comps["妈"] = []string{"女", "马"}
	comps["吗"] = []string{"口", "马"}
	comps["骂"] = []string{"口", "口", "马"}
	comps["嘛"] = []string{"口", "麻"}
	comps["妹"] = []string{"女", "未"}
	comps["姐"] = []string{"女", "且"}
	comps["始"] = []string{"女", "台"}

	var baseline *UsageStats
	for _, workers := range []int{1, 2, 8} {
		a := NewAnalyzer(&fakeDict{entries: entries}, &fakeDecomp{comps: comps}, nil)
		a.Workers = workers
		_, stats, err := a.Analyze(context.Background(), chars, nil)
		require.NoError(t, err)
		if baseline == nil {
			baseline = stats
			continue
		}
		assert.Equal(t, baseline.Usage, stats.Usage, "workers=%d", workers)
		assert.Equal(t, baseline.Occurrences, stats.Occurrences, "workers=%d", workers)
	}
}
