// Package export writes the three leveled tables of a persisted run as CSV
// files for downstream deck builders.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tianhanzi/tian/pkg/db"
)

// File names emitted into the output directory.
const (
	ComponentsFile = "components.csv"
	HanziFile      = "hanzi.csv"
	VocabularyFile = "vocabulary.csv"
)

// WriteRun writes components.csv, hanzi.csv and vocabulary.csv into dir,
// creating it if needed. Rows keep their stored (level) order.
func WriteRun(dir string, components []db.ComponentRow, hanzi []db.HanziRow, words []db.VocabularyRow) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	if err := writeComponents(filepath.Join(dir, ComponentsFile), components); err != nil {
		return err
	}
	if err := writeHanzi(filepath.Join(dir, HanziFile), hanzi); err != nil {
		return err
	}
	return writeVocabulary(filepath.Join(dir, VocabularyFile), words)
}

func writeComponents(path string, rows []db.ComponentRow) error {
	return writeCSV(path, []string{"component", "meaning", "usage_count", "score", "level"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Key, r.Meaning,
			strconv.Itoa(r.UsageCount),
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			strconv.Itoa(r.Level),
		}
	})
}

func writeHanzi(path string, rows []db.HanziRow) error {
	return writeCSV(path, []string{"hanzi", "pinyin", "meaning", "components", "tier", "is_surname", "level"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Hanzi, r.Pinyin, r.Meaning, r.Components,
			strconv.Itoa(r.Tier),
			strconv.FormatBool(r.IsSurname),
			strconv.Itoa(r.Level),
		}
	})
}

func writeVocabulary(path string, rows []db.VocabularyRow) error {
	return writeCSV(path, []string{"word", "pinyin", "meaning", "tier", "rank", "is_surname", "level"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Word, r.Pinyin, r.Meaning,
			strconv.Itoa(r.Tier),
			strconv.Itoa(r.Rank),
			strconv.FormatBool(r.IsSurname),
			strconv.Itoa(r.Level),
		}
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
