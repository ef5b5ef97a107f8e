package models

import "strings"

// OwnerTiers is the ordered list of "Estimated owners" brackets.
// The bracket at index i scores i+1.
type OwnerTiers []string

// DefaultOwnerTiers are the Steam owner brackets, smallest first.
var DefaultOwnerTiers = OwnerTiers{
	"0 - 20000", "20000 - 50000", "50000 - 100000", "100000 - 200000",
	"200000 - 500000", "500000 - 1000000", "1000000 - 2000000",
	"2000000 - 5000000", "5000000 - 10000000", "10000000 - 20000000",
	"20000000 - 50000000", "50000000 - 100000000", "100000000 - 200000000",
}

// Score maps a raw bracket to its 1-based score. Surrounding whitespace is
// ignored; unknown brackets report false.
func (t OwnerTiers) Score(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for i, c := range t {
		if c == raw {
			return i + 1, true
		}
	}
	return 0, false
}
