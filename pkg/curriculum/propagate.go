package curriculum

import "github.com/tianhanzi/tian/pkg/hsk"

// VocabLevelSlack bounds how far past the deepest hanzi level a word may be
// pushed by data anomalies. A safety clamp, not a semantic rule.
const VocabLevelSlack = 10

// maxLevel returns the highest level value in the mapping, 0 when empty.
func maxLevel(levels map[string]int) int {
	max := 0
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}

// AssignHanziLevels assigns every hanzi a level from the component→level
// mapping and returns the hanzi→level mapping plus the count of hanzi that
// fell into the overflow bucket.
//
// A hanzi unlocks at the level of its last-needed component (same-level
// policy, not one level later). A zero-component hanzi is itself a base
// component: it takes the level of the identically-keyed catalogue entry, not
// a default. Hanzi absent from the catalogue, or whose components are all
// unknown, go to the overflow level (one past the deepest component level).
// Components are structurally simpler than the characters built from them, so
// the component→hanzi dependency is acyclic by construction; this is a
// precondition on the decomposition data, not something checked here.
func AssignHanziLevels(hanzi map[string]*Hanzi, componentLevels map[string]int) (map[string]int, int) {
	maxComponentLevel := maxLevel(componentLevels)
	overflow := maxComponentLevel + 1

	levels := make(map[string]int, len(hanzi))
	overflowed := 0
	for key, h := range hanzi {
		level := overflow

		if h.ComponentCount() == 0 {
			if own, ok := componentLevels[key]; ok {
				level = own
			} else {
				overflowed++
			}
		} else {
			found := false
			for _, comp := range h.Components {
				cl, ok := componentLevels[comp]
				if !ok {
					continue
				}
				if !found || cl > level {
					level = cl
				}
				found = true
			}
			if !found {
				level = overflow
				overflowed++
			}
		}

		// Bound the tail: nothing sits past the overflow level.
		if level > overflow {
			level = overflow
		}
		h.Level = level
		levels[key] = level
	}
	return levels, overflowed
}

// AssignWordLevels assigns every word the maximum level among its constituent
// hanzi (same-level policy). Hanzi missing from the mapping contribute the
// overflow level, pushing the word to the tail instead of erroring. Returns
// the count of words containing at least one unknown hanzi.
func AssignWordLevels(words []*Word, hanziLevels map[string]int) int {
	maxHanziLevel := maxLevel(hanziLevels)
	overflow := maxHanziLevel + 1
	ceiling := maxHanziLevel + VocabLevelSlack

	overflowed := 0
	for _, w := range words {
		level := 0
		sawUnknown := false
		for _, r := range w.Word {
			if !hsk.IsHanzi(r) {
				continue
			}
			hl, ok := hanziLevels[string(r)]
			if !ok {
				hl = overflow
				sawUnknown = true
			}
			if hl > level {
				level = hl
			}
		}
		if level == 0 {
			// No hanzi at all (data anomaly): push to the tail.
			level = overflow
			sawUnknown = true
		}
		if level > ceiling {
			level = ceiling
		}
		if sawUnknown {
			overflowed++
		}
		w.Level = level
	}
	return overflowed
}
