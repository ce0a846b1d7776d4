package curriculum

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/tianhanzi/tian/pkg/dictionary"
	"github.com/tianhanzi/tian/pkg/pinyin"
)

// Occurrence records one hanzi (and its curriculum tier) containing a
// component. Kept for diagnostics and frequency-weighted scoring.
type Occurrence struct {
	Hanzi string
	Tier  int
}

// UsageStats aggregates per-component usage across the analyzed hanzi set.
type UsageStats struct {
	// Usage is the total number of hanzi containing each component.
	Usage map[string]int
	// TierUsage breaks Usage down by the containing hanzi's tier.
	TierUsage map[string]map[int]int
	// Occurrences lists the contributing (hanzi, tier) pairs per component.
	Occurrences map[string][]Occurrence

	// SkippedNoDefinition counts hanzi dropped because the dictionary had no
	// entry for them; SkippedNoDecomposition counts hanzi dropped because
	// decomposition failed. Neither aborts the batch.
	SkippedNoDefinition    int
	SkippedNoDecomposition int
}

// Analyzer decomposes every hanzi in the target set and tallies component
// usage. Lookups run on a worker pool; results are merged in sorted character
// order so repeated runs produce identical statistics.
type Analyzer struct {
	Dictionary dictionary.Dictionary
	Decomposer dictionary.Decomposer
	Workers    int
	Logger     *zap.Logger
}

// NewAnalyzer creates an Analyzer with the default worker count.
func NewAnalyzer(dict dictionary.Dictionary, dec dictionary.Decomposer, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{Dictionary: dict, Decomposer: dec, Workers: 4, Logger: logger}
}

// analyzed is the per-character result produced by a worker.
type analyzed struct {
	char            string
	pinyin          string
	meaning         string
	isSurname       bool
	components      []string
	noDefinition    bool
	noDecomposition bool
}

// Analyze processes the given hanzi set against the tier mapping. It returns
// the per-hanzi records (levels unassigned) and the aggregated component
// usage statistics. Characters without dictionary entries or decompositions
// are skipped and counted, never fatal.
func (a *Analyzer) Analyze(ctx context.Context, chars []string, tiers map[string]int) (map[string]*Hanzi, *UsageStats, error) {
	if len(chars) == 0 {
		return nil, nil, ErrEmptyInput
	}

	sorted := make([]string, len(chars))
	copy(sorted, chars)
	sort.Strings(sorted)

	workers := a.Workers
	if workers <= 0 {
		workers = 1
	}
	pool := NewWorkerPool(workers, workers*2)
	results := make(chan analyzed, workers*2)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(ctx)

	// Collector drains results into a map keyed by character; aggregation
	// happens afterwards in sorted order, so worker completion order does not
	// affect the output.
	byChar := make(map[string]analyzed, len(sorted))
	var collectWG sync.WaitGroup
	collectWG.Add(1)
	go func() {
		defer collectWG.Done()
		for res := range results {
			byChar[res.char] = res
		}
	}()

	var submitErr error
	for _, char := range sorted {
		c := char
		err := pool.SubmitCtx(ctx, func(ctx context.Context) error {
			res := a.analyzeOne(c)
			select {
			case results <- res:
			case <-ctx.Done():
			}
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}

	pool.Close()
	close(results)
	collectWG.Wait()

	if submitErr != nil {
		return nil, nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	return a.merge(sorted, byChar, tiers)
}

// analyzeOne performs the dictionary and decomposition lookups for a single
// character.
func (a *Analyzer) analyzeOne(char string) analyzed {
	res := analyzed{char: char}

	entries, err := a.Dictionary.LookupDefinition(char)
	if err != nil || len(entries) == 0 {
		res.noDefinition = true
		return res
	}
	res.pinyin = pinyin.NumberedToAccented(entries[0].Pinyin)
	res.meaning, res.isSurname = dictionary.CleanSurname(dictionary.CombineDefinitions(entries))

	comps, err := a.Decomposer.Decompose(char)
	if err != nil {
		if !errors.Is(err, dictionary.ErrNoDecomposition) {
			a.Logger.Warn("decomposition failed", zap.String("hanzi", char), zap.Error(err))
		}
		res.noDecomposition = true
		return res
	}
	// Self-reference guard: a degenerate decomposition must not make a
	// character its own prerequisite.
	for _, comp := range comps {
		if comp != "" && comp != char {
			res.components = append(res.components, comp)
		}
	}
	return res
}

// merge folds the per-character results into hanzi records and usage
// statistics, iterating in sorted character order.
func (a *Analyzer) merge(sorted []string, byChar map[string]analyzed, tiers map[string]int) (map[string]*Hanzi, *UsageStats, error) {
	hanzi := make(map[string]*Hanzi, len(sorted))
	stats := &UsageStats{
		Usage:       make(map[string]int),
		TierUsage:   make(map[string]map[int]int),
		Occurrences: make(map[string][]Occurrence),
	}

	for _, char := range sorted {
		res, ok := byChar[char]
		if !ok {
			// Result lost to cancellation; treat as skipped.
			stats.SkippedNoDecomposition++
			continue
		}
		if res.noDefinition {
			stats.SkippedNoDefinition++
			continue
		}
		if res.noDecomposition {
			stats.SkippedNoDecomposition++
			continue
		}

		tier := tiers[char]
		for _, comp := range res.components {
			stats.Usage[comp]++
			if tier > 0 {
				if stats.TierUsage[comp] == nil {
					stats.TierUsage[comp] = make(map[int]int)
				}
				stats.TierUsage[comp][tier]++
			}
			stats.Occurrences[comp] = append(stats.Occurrences[comp], Occurrence{Hanzi: char, Tier: tier})
		}

		hanzi[char] = &Hanzi{
			Hanzi:      char,
			Pinyin:     res.pinyin,
			Meaning:    res.meaning,
			Components: res.components,
			Tier:       tier,
			IsSurname:  res.isSurname,
		}
	}

	if len(hanzi) == 0 {
		return nil, nil, ErrEmptyInput
	}

	a.Logger.Info("component analysis complete",
		zap.Int("hanzi", len(hanzi)),
		zap.Int("components", len(stats.Usage)),
		zap.Int("skipped_no_definition", stats.SkippedNoDefinition),
		zap.Int("skipped_no_decomposition", stats.SkippedNoDecomposition))

	return hanzi, stats, nil
}
