package analysis

import (
	"sort"

	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

const (
	// MinIntersectionLabels is the fewest labels an intersection can compare.
	MinIntersectionLabels = 2
	// MaxIntersectionLabels keeps the 2^n combination space small.
	MaxIntersectionLabels = 6
)

// MembershipMatrix marks, per game, which of the chosen labels it carries.
// Rows follow the subset order, columns follow Labels.
type MembershipMatrix struct {
	Labels []string
	AppIDs []int64
	Cells  [][]bool

	// Insufficient is set when the subset was too small to analyse; the
	// matrix is then left empty.
	Insufficient bool
	MinItems     int
	Items        int
}

// BuildMembership builds the games × labels matrix for subset. The order of
// chosen is preserved since it drives category order downstream.
//
// Fewer than MinIntersectionLabels or more than MaxIntersectionLabels labels,
// empty or duplicate labels are caller errors. A subset with fewer than
// minItems games is not an error: the returned matrix is marked Insufficient.
func BuildMembership(subset []*models.Game, dim models.Dimension, chosen []string, minItems int) (MembershipMatrix, error) {
	if len(chosen) < MinIntersectionLabels || len(chosen) > MaxIntersectionLabels {
		return MembershipMatrix{}, paramErr("labels", "need between %d and %d labels, got %d",
			MinIntersectionLabels, MaxIntersectionLabels, len(chosen))
	}
	cols := make([]string, 0, len(chosen))
	seen := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		tok := labels.Token(c)
		if tok == "" {
			return MembershipMatrix{}, paramErr("labels", "label must not be empty")
		}
		if _, dup := seen[tok]; dup {
			return MembershipMatrix{}, paramErr("labels", "label %q given twice", tok)
		}
		seen[tok] = struct{}{}
		cols = append(cols, tok)
	}

	m := MembershipMatrix{Labels: cols, MinItems: minItems, Items: len(subset)}
	if len(subset) < minItems {
		m.Insufficient = true
		return m, nil
	}

	m.AppIDs = make([]int64, 0, len(subset))
	m.Cells = make([][]bool, 0, len(subset))
	for _, g := range subset {
		if g == nil {
			continue
		}
		set := labels.Set(g.LabelField(dim))
		row := make([]bool, len(cols))
		for j, c := range cols {
			_, row[j] = set[c]
		}
		m.AppIDs = append(m.AppIDs, g.AppID)
		m.Cells = append(m.Cells, row)
	}
	return m, nil
}

// Intersections counts games per exact label combination, largest first.
// Games carrying none of the labels are not reported.
func (m MembershipMatrix) Intersections() []models.Intersection {
	if m.Insufficient || len(m.Cells) == 0 {
		return nil
	}
	counts := make(map[uint]int)
	for _, row := range m.Cells {
		var mask uint
		for j, in := range row {
			if in {
				mask |= 1 << uint(j)
			}
		}
		if mask != 0 {
			counts[mask]++
		}
	}

	masks := make([]uint, 0, len(counts))
	for mask := range counts {
		masks = append(masks, mask)
	}
	sort.Slice(masks, func(i, j int) bool {
		if counts[masks[i]] != counts[masks[j]] {
			return counts[masks[i]] > counts[masks[j]]
		}
		return masks[i] < masks[j]
	})

	out := make([]models.Intersection, 0, len(masks))
	for _, mask := range masks {
		var set []string
		for j, l := range m.Labels {
			if mask&(1<<uint(j)) != 0 {
				set = append(set, l)
			}
		}
		out = append(out, models.Intersection{Labels: set, Games: counts[mask]})
	}
	return out
}

// LabelTotals returns, per column, how many games carry that label.
func (m MembershipMatrix) LabelTotals() []int {
	totals := make([]int, len(m.Labels))
	for _, row := range m.Cells {
		for j, in := range row {
			if in {
				totals[j]++
			}
		}
	}
	return totals
}

// TopLabels returns the n most frequent labels of dim within subset,
// skipping exclude. Ties are broken alphabetically.
func TopLabels(subset []*models.Game, dim models.Dimension, n int, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[labels.Token(e)] = struct{}{}
	}
	rows := Explode(subset, dim)
	freq := make(map[string]int)
	for _, r := range rows {
		if _, s := skip[r.Label]; s {
			continue
		}
		freq[r.Label]++
	}
	out := make([]string, 0, len(freq))
	for l := range freq {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if freq[out[i]] != freq[out[j]] {
			return freq[out[i]] > freq[out[j]]
		}
		return out[i] < out[j]
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
