package curriculum

import "sort"

// DefaultMinUnlock is the minimum number of newly decodable hanzi required to
// close a level.
const DefaultMinUnlock = 20

// GrouperState is the accumulator threaded through the breakpoint loop: the
// set of components known so far, the hanzi already counted as unlocked, and
// the partial level under construction. Keeping it explicit makes the loop
// testable from any intermediate state.
type GrouperState struct {
	Level    int
	Known    map[string]struct{}
	Unlocked map[string]struct{}

	pendingComponents []string
	pendingUnlocked   []string

	// locked holds hanzi (with nonzero components) not yet unlocked, in
	// sorted key order for deterministic scanning.
	locked []lockedHanzi
}

type lockedHanzi struct {
	key        string
	components []string
}

// NewGrouperState initialises the accumulator for the given hanzi set.
// Zero-component hanzi never participate in unlock counting; they are leveled
// later by the propagator.
func NewGrouperState(hanzi map[string]*Hanzi) *GrouperState {
	st := &GrouperState{
		Level:    1,
		Known:    make(map[string]struct{}),
		Unlocked: make(map[string]struct{}),
	}
	for key, h := range hanzi {
		if h.ComponentCount() == 0 {
			continue
		}
		st.locked = append(st.locked, lockedHanzi{key: key, components: h.Components})
	}
	sort.Slice(st.locked, func(i, j int) bool { return st.locked[i].key < st.locked[j].key })
	return st
}

// add registers one more component as known and returns the hanzi newly
// decodable because of it. Every still-locked hanzi is rechecked: the latest
// addition can complete any component list, regardless of position.
func (st *GrouperState) add(component string) []string {
	st.Known[component] = struct{}{}
	st.pendingComponents = append(st.pendingComponents, component)

	var unlocked []string
	remaining := st.locked[:0]
	for _, h := range st.locked {
		if st.decodable(h.components) {
			unlocked = append(unlocked, h.key)
			st.Unlocked[h.key] = struct{}{}
		} else {
			remaining = append(remaining, h)
		}
	}
	st.locked = remaining
	st.pendingUnlocked = append(st.pendingUnlocked, unlocked...)
	return unlocked
}

// decodable reports whether every component in the list is known.
func (st *GrouperState) decodable(components []string) bool {
	if len(components) == 0 {
		return false
	}
	for _, c := range components {
		if _, ok := st.Known[c]; !ok {
			return false
		}
	}
	return true
}

// closeLevel emits the accumulated partial level and resets the accumulators
// for the next one.
func (st *GrouperState) closeLevel() LevelGroup {
	group := LevelGroup{
		Level:      st.Level,
		Components: st.pendingComponents,
		Unlocked:   st.pendingUnlocked,
	}
	st.Level++
	st.pendingComponents = nil
	st.pendingUnlocked = nil
	return group
}

// Grouper assigns components to levels by walking them in productivity order
// and closing a level whenever at least MinUnlock previously locked hanzi
// have become fully decodable.
type Grouper struct {
	// MinUnlock is the unlock threshold per level; zero or negative falls
	// back to DefaultMinUnlock.
	MinUnlock int
}

// Assign consumes the productivity-ordered component list and returns the
// emitted levels plus the component→level mapping. Every component receives a
// level: a trailing under-threshold accumulation is flushed as the final
// level rather than dropped.
func (g *Grouper) Assign(ordered []Component, hanzi map[string]*Hanzi) ([]LevelGroup, map[string]int, error) {
	if len(ordered) == 0 {
		return nil, nil, ErrEmptyInput
	}
	threshold := g.MinUnlock
	if threshold <= 0 {
		threshold = DefaultMinUnlock
	}

	st := NewGrouperState(hanzi)
	var groups []LevelGroup
	levels := make(map[string]int, len(ordered))

	for _, comp := range ordered {
		levels[comp.Key] = st.Level
		st.add(comp.Key)
		if len(st.pendingUnlocked) >= threshold {
			groups = append(groups, st.closeLevel())
		}
	}

	// Flush the remainder: no component may be left without a level.
	if len(st.pendingComponents) > 0 {
		groups = append(groups, st.closeLevel())
	}

	return groups, levels, nil
}
