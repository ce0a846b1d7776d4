// Package hsk reads the raw HSK 3.0 data assets: per-tier frequency-ranked
// vocabulary lists and per-tier hanzi lists.
package hsk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// VocabRow is one word from a tier's frequency list. Rank is the 1-based
// position within that tier's list.
type VocabRow struct {
	Word string
	Tier int
	Rank int
}

// Repository provides access to the HSK data directory. The expected layout
// mirrors the upstream HSK 3.0 dataset:
//
//	<dir>/HSK List (Frequency)/HSK <tier>.txt
//	<dir>/HSK Hanzi/HSK <tier>.txt
type Repository struct {
	Dir    string
	Logger *zap.Logger
}

// NewRepository returns a Repository rooted at dir. logger may be nil.
func NewRepository(dir string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{Dir: dir, Logger: logger}
}

func (r *Repository) frequencyFile(tier int) string {
	return filepath.Join(r.Dir, "HSK List (Frequency)", fmt.Sprintf("HSK %d.txt", tier))
}

func (r *Repository) hanziFile(tier int) string {
	return filepath.Join(r.Dir, "HSK Hanzi", fmt.Sprintf("HSK %d.txt", tier))
}

// LoadVocabulary returns the words for the given tiers in tier order, each
// with its within-tier frequency rank. A word seen in an earlier tier is not
// repeated for later tiers. Missing tier files are logged and skipped.
func (r *Repository) LoadVocabulary(tiers []int) ([]VocabRow, error) {
	var rows []VocabRow
	seen := make(map[string]struct{})
	for _, tier := range tiers {
		words, err := readLines(r.frequencyFile(tier))
		if err != nil {
			if os.IsNotExist(err) {
				r.Logger.Warn("vocabulary list missing", zap.Int("tier", tier), zap.String("path", r.frequencyFile(tier)))
				continue
			}
			return nil, fmt.Errorf("read tier %d vocabulary: %w", tier, err)
		}
		for i, word := range words {
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			rows = append(rows, VocabRow{Word: word, Tier: tier, Rank: i + 1})
		}
		r.Logger.Info("loaded vocabulary tier", zap.Int("tier", tier), zap.Int("words", len(words)))
	}
	return rows, nil
}

// LoadHanziTiers maps each hanzi to its first observed tier. Missing tier
// files are logged and skipped.
func (r *Repository) LoadHanziTiers(tiers []int) (map[string]int, error) {
	mapping := make(map[string]int)
	for _, tier := range tiers {
		chars, err := readLines(r.hanziFile(tier))
		if err != nil {
			if os.IsNotExist(err) {
				r.Logger.Warn("hanzi list missing", zap.Int("tier", tier), zap.String("path", r.hanziFile(tier)))
				continue
			}
			return nil, fmt.Errorf("read tier %d hanzi: %w", tier, err)
		}
		for _, char := range chars {
			if _, ok := mapping[char]; !ok {
				mapping[char] = tier
			}
		}
	}
	return mapping, nil
}

// ExtractHanzi returns the sorted set of unique hanzi appearing in the
// vocabulary, restricted to the CJK unified ideograph block.
func ExtractHanzi(vocab []VocabRow) []string {
	set := make(map[string]struct{})
	for _, row := range vocab {
		for _, r := range row.Word {
			if IsHanzi(r) {
				set[string(r)] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for char := range set {
		out = append(out, char)
	}
	sort.Strings(out)
	return out
}

// IsHanzi reports whether r falls in the CJK unified ideograph block.
func IsHanzi(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// readLines returns non-empty trimmed lines, stripping a UTF-8 BOM if the
// file carries one (the upstream lists do).
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
