// Package pinyin converts numbered pinyin (xue3) into accented pinyin (xuě).
package pinyin

import (
	"strings"
	"unicode"
)

// toneMarks maps a base vowel to its accented forms, indexed by tone 0-4
// (index 0 is the bare vowel, used for the neutral tone).
var toneMarks = map[rune][5]rune{
	'a': {'a', 'ā', 'á', 'ǎ', 'à'},
	'e': {'e', 'ē', 'é', 'ě', 'è'},
	'i': {'i', 'ī', 'í', 'ǐ', 'ì'},
	'o': {'o', 'ō', 'ó', 'ǒ', 'ò'},
	'u': {'u', 'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ü', 'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'A': {'A', 'Ā', 'Á', 'Ǎ', 'À'},
	'E': {'E', 'Ē', 'É', 'Ě', 'È'},
	'I': {'I', 'Ī', 'Í', 'Ǐ', 'Ì'},
	'O': {'O', 'Ō', 'Ó', 'Ǒ', 'Ò'},
	'U': {'U', 'Ū', 'Ú', 'Ǔ', 'Ù'},
	'Ü': {'Ü', 'Ǖ', 'Ǘ', 'Ǚ', 'Ǜ'},
}

// NumberedToAccented converts a whitespace-separated sequence of numbered
// pinyin syllables to accented form. Syllables without a trailing tone digit
// pass through unchanged; tone 5 (and 0) is the neutral tone and carries no
// mark. The letter v is treated as ü.
func NumberedToAccented(s string) string {
	if s == "" {
		return s
	}
	syllables := strings.Fields(s)
	converted := make([]string, 0, len(syllables))
	for _, syl := range syllables {
		converted = append(converted, convertSyllable(syl))
	}
	return strings.Join(converted, " ")
}

func convertSyllable(syl string) string {
	runes := []rune(syl)
	last := runes[len(runes)-1]
	if !unicode.IsDigit(last) {
		return syl
	}
	tone := int(last - '0')
	base := runes[:len(runes)-1]

	for i, r := range base {
		switch r {
		case 'v':
			base[i] = 'ü'
		case 'V':
			base[i] = 'Ü'
		}
	}

	if tone == 5 || tone == 0 || tone > 5 {
		return string(base)
	}

	pos := markPosition(base)
	if pos >= 0 {
		if marks, ok := toneMarks[base[pos]]; ok {
			base[pos] = marks[tone]
		}
	}
	return string(base)
}

// markPosition picks the vowel that carries the tone mark: a or e if present,
// then o, otherwise the last of i/u/ü.
func markPosition(base []rune) int {
	for i, r := range base {
		switch unicode.ToLower(r) {
		case 'a', 'e':
			return i
		}
	}
	for i, r := range base {
		if unicode.ToLower(r) == 'o' {
			return i
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		switch unicode.ToLower(base[i]) {
		case 'i', 'u', 'ü':
			return i
		}
	}
	return -1
}
