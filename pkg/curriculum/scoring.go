package curriculum

import (
	"fmt"
	"sort"

	"github.com/tianhanzi/tian/pkg/dictionary"
)

// Weighting selects how raw component usage is turned into a productivity
// score.
type Weighting string

const (
	// WeightingCount scores a component by its raw usage count.
	WeightingCount Weighting = "count"
	// WeightingTier weights usage by the containing hanzi's curriculum tier,
	// earlier tiers counting more.
	WeightingTier Weighting = "tier"
	// WeightingFrequency scores a component by the summed 1/rank of the
	// hanzi containing it, so high-frequency characters contribute more.
	WeightingFrequency Weighting = "frequency"
)

// ParseWeighting validates a configuration string.
func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(s) {
	case WeightingCount, WeightingTier, WeightingFrequency:
		return Weighting(s), nil
	}
	return "", fmt.Errorf("unknown weighting scheme %q", s)
}

// defaultTierWeights mirrors the weights the deck has always used for
// HSK 1/2/3 usage.
var defaultTierWeights = map[int]float64{1: 5, 2: 3, 3: 1}

// Scorer converts usage statistics into scored, deterministically ranked
// components.
type Scorer struct {
	Weighting   Weighting
	TierWeights map[int]float64
	// Ranks maps hanzi to a global frequency rank (1 = most frequent). Only
	// consulted for WeightingFrequency; hanzi without a rank contribute
	// nothing.
	Ranks map[string]int
}

// NewScorer returns a Scorer for the given scheme with the default tier
// weights.
func NewScorer(w Weighting) *Scorer {
	return &Scorer{Weighting: w, TierWeights: defaultTierWeights}
}

// Score computes the productivity score for a single component.
func (s *Scorer) Score(key string, stats *UsageStats) float64 {
	switch s.Weighting {
	case WeightingTier:
		weights := s.TierWeights
		if weights == nil {
			weights = defaultTierWeights
		}
		var score float64
		for tier, count := range stats.TierUsage[key] {
			weight, ok := weights[tier]
			if !ok {
				weight = 1
			}
			score += weight * float64(count)
		}
		return score
	case WeightingFrequency:
		var score float64
		for _, occ := range stats.Occurrences[key] {
			if rank, ok := s.Ranks[occ.Hanzi]; ok && rank > 0 {
				score += 1 / float64(rank)
			}
		}
		return score
	default:
		return float64(stats.Usage[key])
	}
}

// BuildComponents resolves meanings and scores for every observed component
// and returns them in introduction order: descending score, ties broken by
// ascending component key so repeated runs are identical.
func (s *Scorer) BuildComponents(stats *UsageStats, dec dictionary.Decomposer) ([]Component, error) {
	if len(stats.Usage) == 0 {
		return nil, ErrEmptyInput
	}

	components := make([]Component, 0, len(stats.Usage))
	for key, count := range stats.Usage {
		meaning, err := dec.RadicalMeaning(key)
		if err != nil {
			meaning = fmt.Sprintf("Component %s", key)
		}
		tierUsage := make(map[int]int, len(stats.TierUsage[key]))
		for tier, n := range stats.TierUsage[key] {
			tierUsage[tier] = n
		}
		components = append(components, Component{
			Key:        key,
			Meaning:    meaning,
			UsageCount: count,
			TierUsage:  tierUsage,
			Score:      s.Score(key, stats),
		})
	}

	sort.Slice(components, func(i, j int) bool {
		if components[i].Score != components[j].Score {
			return components[i].Score > components[j].Score
		}
		return components[i].Key < components[j].Key
	})
	return components, nil
}
