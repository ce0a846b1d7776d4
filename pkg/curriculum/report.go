package curriculum

import (
	"fmt"
	"sort"
	"strings"
)

// Report summarises a build run: what was skipped, what fell into the
// overflow bucket, and how the population spreads across levels. It exists so
// pedagogical-quality regressions (e.g. too many overflow hanzi) are visible
// even though the run itself succeeds.
type Report struct {
	Components int
	Hanzi      int
	Words      int
	Levels     int

	SkippedNoDefinition    int
	SkippedNoDecomposition int
	OverflowHanzi          int
	OverflowWords          int

	// HanziPerLevel maps level → number of hanzi assigned to it.
	HanziPerLevel map[int]int
	// ComponentsPerLevel maps level → number of components introduced there.
	ComponentsPerLevel map[int]int
}

// BuildReport derives a Report from a finished build.
func BuildReport(groups []LevelGroup, hanzi map[string]*Hanzi, words []*Word, stats *UsageStats, overflowHanzi, overflowWords int) *Report {
	r := &Report{
		Words:              len(words),
		Hanzi:              len(hanzi),
		Levels:             len(groups),
		OverflowHanzi:      overflowHanzi,
		OverflowWords:      overflowWords,
		HanziPerLevel:      make(map[int]int),
		ComponentsPerLevel: make(map[int]int),
	}
	if stats != nil {
		r.SkippedNoDefinition = stats.SkippedNoDefinition
		r.SkippedNoDecomposition = stats.SkippedNoDecomposition
	}
	for _, g := range groups {
		r.Components += len(g.Components)
		r.ComponentsPerLevel[g.Level] = len(g.Components)
	}
	for _, h := range hanzi {
		r.HanziPerLevel[h.Level]++
	}
	return r
}

// FixedSplitLevels returns how many levels a fixed components-per-level split
// would need for the same component count. Kept for comparing the dynamic
// grouping against the old fixed grouping.
func (r *Report) FixedSplitLevels(perLevel int) int {
	if perLevel <= 0 {
		return 0
	}
	return (r.Components + perLevel - 1) / perLevel
}

// String renders a human-readable summary.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "levels: %d  components: %d  hanzi: %d  words: %d\n",
		r.Levels, r.Components, r.Hanzi, r.Words)
	fmt.Fprintf(&b, "skipped: %d without definition, %d without decomposition\n",
		r.SkippedNoDefinition, r.SkippedNoDecomposition)
	fmt.Fprintf(&b, "overflow: %d hanzi, %d words\n", r.OverflowHanzi, r.OverflowWords)

	levels := make([]int, 0, len(r.HanziPerLevel))
	for l := range r.HanziPerLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		fmt.Fprintf(&b, "level %3d: %3d components, %3d hanzi\n",
			l, r.ComponentsPerLevel[l], r.HanziPerLevel[l])
	}
	return b.String()
}
