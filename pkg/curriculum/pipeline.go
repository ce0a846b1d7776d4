package curriculum

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tianhanzi/tian/pkg/dictionary"
	"github.com/tianhanzi/tian/pkg/hsk"
	"github.com/tianhanzi/tian/pkg/pinyin"
)

// Result is a complete leveled curriculum: the three tables plus the emitted
// breakpoint groups and the run report.
type Result struct {
	RunID      string
	Components []Component
	Hanzi      []*Hanzi
	Words      []*Word
	Groups     []LevelGroup
	Report     *Report
}

// Builder wires the full pipeline: load vocabulary and tier data, analyze
// component usage, score and group components, then propagate levels to
// hanzi and words.
type Builder struct {
	Repo       *hsk.Repository
	Dictionary dictionary.Dictionary
	Decomposer dictionary.Decomposer

	Tiers     []int
	MinUnlock int
	Weighting Weighting
	Workers   int

	Logger *zap.Logger
}

// NewBuilder creates a Builder with the default tiers, threshold and
// weighting.
func NewBuilder(repo *hsk.Repository, dict dictionary.Dictionary, dec dictionary.Decomposer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		Repo:       repo,
		Dictionary: dict,
		Decomposer: dec,
		Tiers:      []int{1, 2, 3},
		MinUnlock:  DefaultMinUnlock,
		Weighting:  WeightingTier,
		Workers:    4,
		Logger:     logger,
	}
}

// Build runs the pipeline end to end. Per-item failures degrade to skips or
// overflow levels; only structural problems (no input at all) abort.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	vocab, err := b.Repo.LoadVocabulary(b.Tiers)
	if err != nil {
		return nil, err
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyInput
	}
	tiers, err := b.Repo.LoadHanziTiers(b.Tiers)
	if err != nil {
		return nil, err
	}
	chars := hsk.ExtractHanzi(vocab)
	b.Logger.Info("loaded input data",
		zap.Int("words", len(vocab)),
		zap.Int("hanzi", len(chars)),
		zap.Ints("tiers", b.Tiers))

	analyzer := NewAnalyzer(b.Dictionary, b.Decomposer, b.Logger)
	analyzer.Workers = b.Workers
	hanzi, stats, err := analyzer.Analyze(ctx, chars, tiers)
	if err != nil {
		return nil, err
	}

	scorer := NewScorer(b.Weighting)
	if b.Weighting == WeightingFrequency {
		scorer.Ranks = globalRanks(vocab)
	}
	components, err := scorer.BuildComponents(stats, b.Decomposer)
	if err != nil {
		return nil, err
	}

	grouper := &Grouper{MinUnlock: b.MinUnlock}
	groups, componentLevels, err := grouper.Assign(components, hanzi)
	if err != nil {
		return nil, err
	}
	for i := range components {
		components[i].Level = componentLevels[components[i].Key]
	}

	hanziLevels, overflowHanzi := AssignHanziLevels(hanzi, componentLevels)

	words := b.buildWords(vocab)
	overflowWords := AssignWordLevels(words, hanziLevels)

	report := BuildReport(groups, hanzi, words, stats, overflowHanzi, overflowWords)
	b.Logger.Info("level assignment complete",
		zap.Int("levels", report.Levels),
		zap.Int("overflow_hanzi", overflowHanzi),
		zap.Int("overflow_words", overflowWords))

	return &Result{
		RunID:      uuid.NewString(),
		Components: components,
		Hanzi:      sortedHanzi(hanzi),
		Words:      sortWords(words),
		Groups:     groups,
		Report:     report,
	}, nil
}

// buildWords enriches the raw vocabulary rows with pinyin and meanings. A
// word missing from the dictionary keeps empty fields; it is not skipped.
func (b *Builder) buildWords(vocab []hsk.VocabRow) []*Word {
	words := make([]*Word, 0, len(vocab))
	for _, row := range vocab {
		w := &Word{Word: row.Word, Tier: row.Tier, Rank: row.Rank}
		if entries, err := b.Dictionary.LookupDefinition(row.Word); err == nil && len(entries) > 0 {
			w.Pinyin = pinyin.NumberedToAccented(entries[0].Pinyin)
			w.Meaning, w.IsSurname = dictionary.CleanSurname(dictionary.CombineDefinitions(entries))
		}
		words = append(words, w)
	}
	return words
}

// globalRanks assigns each hanzi a global frequency rank: the ordinal of its
// first appearance walking the vocabulary in tier order, most frequent words
// first.
func globalRanks(vocab []hsk.VocabRow) map[string]int {
	ranks := make(map[string]int)
	next := 1
	for _, row := range vocab {
		for _, r := range row.Word {
			if !hsk.IsHanzi(r) {
				continue
			}
			char := string(r)
			if _, ok := ranks[char]; !ok {
				ranks[char] = next
				next++
			}
		}
	}
	return ranks
}

// sortedHanzi orders hanzi for presentation: level, then source tier (absent
// tiers last), then component count (simpler first), then the character.
func sortedHanzi(hanzi map[string]*Hanzi) []*Hanzi {
	out := make([]*Hanzi, 0, len(hanzi))
	for _, h := range hanzi {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if ta, tb := tierSortKey(a.Tier), tierSortKey(b.Tier); ta != tb {
			return ta < tb
		}
		if a.ComponentCount() != b.ComponentCount() {
			return a.ComponentCount() < b.ComponentCount()
		}
		return a.Hanzi < b.Hanzi
	})
	return out
}

// sortWords orders words for presentation: level, then source tier, then
// frequency rank, then the word itself.
func sortWords(words []*Word) []*Word {
	sort.Slice(words, func(i, j int) bool {
		a, b := words[i], words[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if ta, tb := tierSortKey(a.Tier), tierSortKey(b.Tier); ta != tb {
			return ta < tb
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Word < b.Word
	})
	return words
}

// tierSortKey places unknown (zero) tiers after known ones.
func tierSortKey(tier int) int {
	if tier == 0 {
		return int(^uint(0) >> 1)
	}
	return tier
}
