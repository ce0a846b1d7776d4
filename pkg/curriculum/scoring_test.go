package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture() *UsageStats {
	return &UsageStats{
		Usage: map[string]int{
			"女": 3,
			"马": 2,
			"口": 2,
		},
		TierUsage: map[string]map[int]int{
			"女": {1: 2, 2: 1},
			"马": {2: 2},
			"口": {1: 1, 3: 1},
		},
		Occurrences: map[string][]Occurrence{
			"女": {{Hanzi: "好", Tier: 1}, {Hanzi: "妈", Tier: 1}, {Hanzi: "妹", Tier: 2}},
			"马": {{Hanzi: "妈", Tier: 1}, {Hanzi: "吗", Tier: 2}},
			"口": {{Hanzi: "吗", Tier: 2}, {Hanzi: "叫", Tier: 3}},
		},
	}
}

func TestScoreUnweighted(t *testing.T) {
	s := NewScorer(WeightingCount)
	stats := statsFixture()
	assert.Equal(t, 3.0, s.Score("女", stats))
	assert.Equal(t, 2.0, s.Score("马", stats))
}

func TestScoreTierWeighted(t *testing.T) {
	s := NewScorer(WeightingTier)
	stats := statsFixture()
	// 女: 2×5 + 1×3 = 13; 马: 2×3 = 6; 口: 1×5 + 1×1 = 6
	assert.Equal(t, 13.0, s.Score("女", stats))
	assert.Equal(t, 6.0, s.Score("马", stats))
	assert.Equal(t, 6.0, s.Score("口", stats))
}

func TestScoreFrequencyWeighted(t *testing.T) {
	s := NewScorer(WeightingFrequency)
	s.Ranks = map[string]int{"好": 1, "妈": 4, "妹": 10, "吗": 2}
	stats := statsFixture()
	assert.InDelta(t, 1.0+0.25+0.1, s.Score("女", stats), 1e-9)
	assert.InDelta(t, 0.25+0.5, s.Score("马", stats), 1e-9)
	// 叫 has no rank and contributes nothing
	assert.InDelta(t, 0.5, s.Score("口", stats), 1e-9)
}

func TestBuildComponentsDeterministicOrder(t *testing.T) {
	s := NewScorer(WeightingTier)
	stats := statsFixture()
	dec := &fakeDecomp{meanings: map[string]string{"女": "woman", "马": "horse"}}

	components, err := s.BuildComponents(stats, dec)
	require.NoError(t, err)
	require.Len(t, components, 3)

	// 女 first by score; 口 (U+53E3) before 马 (U+9A6C) breaks the 6-6 tie
	assert.Equal(t, "女", components[0].Key)
	assert.Equal(t, "口", components[1].Key)
	assert.Equal(t, "马", components[2].Key)

	assert.Equal(t, "woman", components[0].Meaning)
	assert.Equal(t, "Component 口", components[1].Meaning)
	assert.Equal(t, 3, components[0].UsageCount)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, components[0].TierUsage)
}

func TestBuildComponentsEmpty(t *testing.T) {
	s := NewScorer(WeightingCount)
	_, err := s.BuildComponents(&UsageStats{Usage: map[string]int{}}, &fakeDecomp{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseWeighting(t *testing.T) {
	for _, valid := range []string{"count", "tier", "frequency"} {
		w, err := ParseWeighting(valid)
		require.NoError(t, err)
		assert.Equal(t, Weighting(valid), w)
	}
	_, err := ParseWeighting("bogus")
	assert.Error(t, err)
}
