// Package dictionary defines the lookup and decomposition services the
// curriculum build depends on, plus a JSON-file-backed implementation.
//
// The build only ever talks to the two narrow interfaces below, so tests (and
// alternative dictionary datasets) can swap in their own implementations.
package dictionary

import "strings"

// Entry is a single dictionary sense for a hanzi or word.
type Entry struct {
	Pinyin     string `json:"pinyin"`
	Definition string `json:"definition"`
}

// Dictionary resolves a term (single hanzi or multi-character word) to its
// dictionary entries. Implementations return ErrNotFound when the term is
// absent.
type Dictionary interface {
	LookupDefinition(term string) ([]Entry, error)
}

// Decomposer breaks a single hanzi into its ordered component list and knows
// the conventional meaning of component glyphs. Decompose returns
// ErrNoDecomposition when the dataset has no entry for the character.
type Decomposer interface {
	Decompose(char string) ([]string, error)
	RadicalMeaning(component string) (string, error)
}

// NotFoundError reports a term missing from the dictionary dataset.
type NotFoundError struct{ msg string }

func (e *NotFoundError) Error() string { return e.msg }

// ErrNotFound is returned by LookupDefinition for unknown terms.
var ErrNotFound = &NotFoundError{"dictionary: term not found"}

// ErrNoDecomposition is returned by Decompose for characters without
// decomposition data.
var ErrNoDecomposition = &NotFoundError{"dictionary: no decomposition"}

// CleanSurname strips "surname X" senses from a combined definition string
// (senses joined by ";") and reports whether any were present. Dictionary
// definitions for common characters often lead with a surname sense that is
// useless on a flashcard.
func CleanSurname(definition string) (string, bool) {
	if definition == "" {
		return "", false
	}
	isSurname := false
	var parts []string
	for _, part := range strings.Split(definition, ";") {
		candidate := strings.TrimSpace(part)
		if candidate == "" {
			continue
		}
		lower := strings.ToLower(candidate)
		if strings.HasPrefix(lower, "surname ") {
			isSurname = true
			continue
		}
		if strings.Contains(lower, "surname ") {
			isSurname = true
			var kept []string
			for _, sub := range strings.Split(candidate, "/") {
				sub = strings.TrimSpace(sub)
				if sub == "" || strings.HasPrefix(strings.ToLower(sub), "surname ") {
					continue
				}
				kept = append(kept, sub)
			}
			if len(kept) > 0 {
				parts = append(parts, strings.Join(kept, "/"))
			}
			continue
		}
		parts = append(parts, candidate)
	}
	return strings.Join(parts, "; "), isSurname
}

// CombineDefinitions joins the definition text of all entries with "; ",
// skipping empty senses.
func CombineDefinitions(entries []Entry) string {
	var defs []string
	for _, e := range entries {
		if e.Definition != "" {
			defs = append(defs, e.Definition)
		}
	}
	return strings.Join(defs, "; ")
}
