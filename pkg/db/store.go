package db

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/tianhanzi/tian/pkg/curriculum"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// InsertRun records the run header.
func InsertRun(db DBExecutor, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run id must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO runs
		(id, weighting, min_unlock, tiers, levels, overflow_hanzi, overflow_words, skipped_no_definition, skipped_no_decomposition)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Weighting, run.MinUnlock, run.Tiers, run.Levels,
		run.OverflowHanzi, run.OverflowWords, run.SkippedNoDefinition, run.SkippedNoDecomposition)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// InsertComponent records one component row.
func InsertComponent(db DBExecutor, row ComponentRow) error {
	_, err := db.Exec(`INSERT INTO components
		(run_id, position, key, meaning, usage_count, score, level)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.Position, row.Key, row.Meaning, row.UsageCount, row.Score, row.Level)
	if err != nil {
		return fmt.Errorf("insert component %s: %w", row.Key, err)
	}
	return nil
}

// InsertHanzi records one hanzi row.
func InsertHanzi(db DBExecutor, row HanziRow) error {
	_, err := db.Exec(`INSERT INTO hanzi
		(run_id, position, hanzi, pinyin, meaning, components, tier, is_surname, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.Position, row.Hanzi, row.Pinyin, row.Meaning, row.Components,
		row.Tier, row.IsSurname, row.Level)
	if err != nil {
		return fmt.Errorf("insert hanzi %s: %w", row.Hanzi, err)
	}
	return nil
}

// InsertVocabulary records one word row.
func InsertVocabulary(db DBExecutor, row VocabularyRow) error {
	_, err := db.Exec(`INSERT INTO vocabulary
		(run_id, position, word, pinyin, meaning, tier, rank, is_surname, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.Position, row.Word, row.Pinyin, row.Meaning,
		row.Tier, row.Rank, row.IsSurname, row.Level)
	if err != nil {
		return fmt.Errorf("insert word %s: %w", row.Word, err)
	}
	return nil
}

// SaveResult persists a finished build: the run header plus all three leveled
// tables, written through a BatchWriter so large curricula commit in chunks.
func SaveResult(conn *sql.DB, res *curriculum.Result, weighting string, minUnlock int, tiers []int) error {
	tierLabels := make([]string, len(tiers))
	for i, t := range tiers {
		tierLabels[i] = fmt.Sprintf("%d", t)
	}
	run := Run{
		ID:                     res.RunID,
		Weighting:              weighting,
		MinUnlock:              minUnlock,
		Tiers:                  strings.Join(tierLabels, ","),
		Levels:                 res.Report.Levels,
		OverflowHanzi:          res.Report.OverflowHanzi,
		OverflowWords:          res.Report.OverflowWords,
		SkippedNoDefinition:    res.Report.SkippedNoDefinition,
		SkippedNoDecomposition: res.Report.SkippedNoDecomposition,
	}
	if err := InsertRun(conn, run); err != nil {
		return err
	}

	bw := NewBatchWriter(conn, 200, 0)
	for i, c := range res.Components {
		row := ComponentRow{
			RunID: res.RunID, Position: i + 1,
			Key: c.Key, Meaning: c.Meaning,
			UsageCount: c.UsageCount, Score: c.Score, Level: c.Level,
		}
		if err := bw.Submit(func(tx *sql.Tx) error { return InsertComponent(tx, row) }); err != nil {
			bw.Close()
			return err
		}
	}
	for i, h := range res.Hanzi {
		row := HanziRow{
			RunID: res.RunID, Position: i + 1,
			Hanzi: h.Hanzi, Pinyin: h.Pinyin, Meaning: h.Meaning,
			Components: strings.Join(h.Components, " "),
			Tier:       h.Tier, IsSurname: h.IsSurname, Level: h.Level,
		}
		if err := bw.Submit(func(tx *sql.Tx) error { return InsertHanzi(tx, row) }); err != nil {
			bw.Close()
			return err
		}
	}
	for i, w := range res.Words {
		row := VocabularyRow{
			RunID: res.RunID, Position: i + 1,
			Word: w.Word, Pinyin: w.Pinyin, Meaning: w.Meaning,
			Tier: w.Tier, Rank: w.Rank, IsSurname: w.IsSurname, Level: w.Level,
		}
		if err := bw.Submit(func(tx *sql.Tx) error { return InsertVocabulary(tx, row) }); err != nil {
			bw.Close()
			return err
		}
	}
	return bw.Close()
}

// LatestRun returns the most recently recorded run.
func LatestRun(db DBExecutor) (Run, error) {
	return scanRun(db.QueryRow(`SELECT id, created_at, weighting, min_unlock, tiers, levels,
		overflow_hanzi, overflow_words, skipped_no_definition, skipped_no_decomposition
		FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`))
}

// GetRun returns the run with the given id.
func GetRun(db DBExecutor, id string) (Run, error) {
	return scanRun(db.QueryRow(`SELECT id, created_at, weighting, min_unlock, tiers, levels,
		overflow_hanzi, overflow_words, skipped_no_definition, skipped_no_decomposition
		FROM runs WHERE id = ?`, id))
}

func scanRun(row *sql.Row) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.Weighting, &r.MinUnlock, &r.Tiers, &r.Levels,
		&r.OverflowHanzi, &r.OverflowWords, &r.SkippedNoDefinition, &r.SkippedNoDecomposition)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns all runs, newest first.
func ListRuns(db DBExecutor) ([]Run, error) {
	rows, err := db.Query(`SELECT id, created_at, weighting, min_unlock, tiers, levels,
		overflow_hanzi, overflow_words, skipped_no_definition, skipped_no_decomposition
		FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Weighting, &r.MinUnlock, &r.Tiers, &r.Levels,
			&r.OverflowHanzi, &r.OverflowWords, &r.SkippedNoDefinition, &r.SkippedNoDecomposition); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HanziForRun returns the persisted hanzi table in stored order.
func HanziForRun(db DBExecutor, runID string) ([]HanziRow, error) {
	rows, err := db.Query(`SELECT run_id, position, hanzi, pinyin, meaning, components, tier, is_surname, level
		FROM hanzi WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HanziRow
	for rows.Next() {
		var h HanziRow
		if err := rows.Scan(&h.RunID, &h.Position, &h.Hanzi, &h.Pinyin, &h.Meaning,
			&h.Components, &h.Tier, &h.IsSurname, &h.Level); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ComponentsForRun returns the persisted component table in introduction order.
func ComponentsForRun(db DBExecutor, runID string) ([]ComponentRow, error) {
	rows, err := db.Query(`SELECT run_id, position, key, meaning, usage_count, score, level
		FROM components WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ComponentRow
	for rows.Next() {
		var c ComponentRow
		if err := rows.Scan(&c.RunID, &c.Position, &c.Key, &c.Meaning,
			&c.UsageCount, &c.Score, &c.Level); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// VocabularyForRun returns the persisted vocabulary table in stored order.
func VocabularyForRun(db DBExecutor, runID string) ([]VocabularyRow, error) {
	rows, err := db.Query(`SELECT run_id, position, word, pinyin, meaning, tier, rank, is_surname, level
		FROM vocabulary WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VocabularyRow
	for rows.Next() {
		var v VocabularyRow
		if err := rows.Scan(&v.RunID, &v.Position, &v.Word, &v.Pinyin, &v.Meaning,
			&v.Tier, &v.Rank, &v.IsSurname, &v.Level); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// LevelCounts returns per-level populations for one of the three tables
// ("components", "hanzi" or "vocabulary"), sorted by level.
func LevelCounts(db DBExecutor, runID, table string) ([]LevelCount, error) {
	switch table {
	case "components", "hanzi", "vocabulary":
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	rows, err := db.Query(`SELECT level, COUNT(*) FROM `+table+` WHERE run_id = ? GROUP BY level`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LevelCount
	for rows.Next() {
		var lc LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}
