package db

import "time"

// Run is one persisted curriculum build.
type Run struct {
	ID        string
	CreatedAt time.Time
	Weighting string
	MinUnlock int
	Tiers     string
	Levels    int

	OverflowHanzi          int
	OverflowWords          int
	SkippedNoDefinition    int
	SkippedNoDecomposition int
}

// ComponentRow is one component of a persisted run, in introduction order.
type ComponentRow struct {
	RunID      string
	Position   int
	Key        string
	Meaning    string
	UsageCount int
	Score      float64
	Level      int
}

// HanziRow is one hanzi of a persisted run.
type HanziRow struct {
	RunID      string
	Position   int
	Hanzi      string
	Pinyin     string
	Meaning    string
	Components string // space-joined component keys
	Tier       int
	IsSurname  bool
	Level      int
}

// VocabularyRow is one word of a persisted run.
type VocabularyRow struct {
	RunID     string
	Position  int
	Word      string
	Pinyin    string
	Meaning   string
	Tier      int
	Rank      int
	IsSurname bool
	Level     int
}

// LevelCount is the population of one level for one of the three tables.
type LevelCount struct {
	Level int
	Count int
}
