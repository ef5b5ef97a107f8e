// Package labels turns delimited label fields ("Indie, action,RPG") into
// canonical tokens.
package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator splits a raw label field.
const Separator = ","

// Normalize splits raw on commas and returns the cleaned tokens in their
// input order. Each token is trimmed, has inner whitespace collapsed and
// is title-cased, so "  free   to play" and "Free To Play" produce the same
// token. Empty tokens are dropped; duplicates are kept.
//
// Missing or whitespace-only input yields an empty slice.
func Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	// Casers carry state and must not be shared between goroutines.
	caser := cases.Title(language.Und)

	parts := strings.Split(raw, Separator)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = collapse(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, caser.String(p))
	}
	return tokens
}

// Token normalizes a single label, e.g. a label typed on the command line.
// It returns "" when nothing is left after cleaning.
func Token(s string) string {
	s = collapse(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}

// Distinct returns the tokens of raw with duplicates removed, keeping the
// first occurrence of each.
func Distinct(raw string) []string {
	tokens := Normalize(raw)
	if len(tokens) < 2 {
		return tokens
	}
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Set returns the distinct tokens of raw as a lookup set.
func Set(raw string) map[string]struct{} {
	tokens := Normalize(raw)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether raw contains label as a whole token. "Rpg" does not
// match a field that only carries "Rpg Maker".
func Has(raw, label string) bool {
	label = Token(label)
	if label == "" {
		return false
	}
	for _, t := range Normalize(raw) {
		if t == label {
			return true
		}
	}
	return false
}

// Join renders tokens back into a canonical field.
func Join(tokens []string) string {
	return strings.Join(tokens, Separator)
}

// collapse trims s and squeezes runs of inner whitespace to one space.
func collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
