// Package curriculum implements the dependency-respecting level assignment
// for components, hanzi and vocabulary: component usage analysis,
// productivity scoring, breakpoint grouping and two-stage level propagation.
package curriculum

// Component is one sub-character building block discovered by decomposing the
// target hanzi set.
type Component struct {
	Key        string
	Meaning    string
	UsageCount int
	// TierUsage counts how many hanzi of each curriculum tier contain the
	// component.
	TierUsage map[int]int
	Score     float64
	Level     int
}

// Hanzi is one character of the target set with its decomposition and
// assigned level.
type Hanzi struct {
	Hanzi      string
	Pinyin     string
	Meaning    string
	Components []string
	Tier       int // 0 when the character is absent from the tier lists
	IsSurname  bool
	Level      int
}

// ComponentCount returns the number of components; zero-component hanzi are
// themselves usable as base components.
func (h Hanzi) ComponentCount() int { return len(h.Components) }

// Word is one vocabulary entry with its assigned level.
type Word struct {
	Word      string
	Pinyin    string
	Meaning   string
	Tier      int
	Rank      int // frequency rank within the source tier
	IsSurname bool
	Level     int
}

// LevelGroup is one emitted breakpoint level: the components introduced at
// that level and the hanzi they newly unlock.
type LevelGroup struct {
	Level      int
	Components []string
	Unlocked   []string
}

// EmptyInputError reports that a build stage received nothing to process.
type EmptyInputError struct{ msg string }

func (e *EmptyInputError) Error() string { return e.msg }

// ErrEmptyInput aborts a build when there are no characters, components or
// words to level.
var ErrEmptyInput = &EmptyInputError{"curriculum: empty input"}
