package analysis

import (
	"sort"

	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

// ============================================================================
// FILTERS: catalog and row subsets
// ============================================================================
// Every filter returns a new slice; the games themselves are shared.
// ============================================================================

// FilterYears keeps games released within [from, to]. Games without a
// release year never match.
func FilterYears(games []*models.Game, from, to int) []*models.Game {
	out := make([]*models.Game, 0, len(games))
	for _, g := range games {
		if g == nil || !g.ReleaseYear.Valid {
			continue
		}
		y := int(g.ReleaseYear.Int64)
		if y >= from && y <= to {
			out = append(out, g)
		}
	}
	return out
}

// FilterLowData drops games with fewer total reviews than minReviews or a
// peak CCU below minCCU. A game with no peak CCU passes only when minCCU is 0.
func FilterLowData(games []*models.Game, minReviews, minCCU float64) []*models.Game {
	out := make([]*models.Game, 0, len(games))
	for _, g := range games {
		if g == nil || g.TotalReviews < minReviews {
			continue
		}
		ccu, ok := g.Metric(models.MetricPeakCCU)
		if !ok {
			if minCCU > 0 {
				continue
			}
		} else if ccu < minCCU {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SelectLabels restricts exploded rows to the selected labels
// (SelectInclude) or removes them (SelectExclude). An empty selection keeps
// every row.
func SelectLabels(rows []LabelRow, selected []string, mode SelectionMode) []LabelRow {
	set := Params{Selected: selected}.selection()
	if len(set) == 0 {
		return rows
	}
	exclude := mode == SelectExclude
	out := make([]LabelRow, 0, len(rows))
	for _, r := range rows {
		_, hit := set[r.Label]
		if hit != exclude {
			out = append(out, r)
		}
	}
	return out
}

// AllLabels returns the sorted distinct labels of dim across games.
func AllLabels(games []*models.Game, dim models.Dimension) []string {
	seen := make(map[string]struct{})
	for _, g := range games {
		if g == nil {
			continue
		}
		for _, t := range labels.Normalize(g.LabelField(dim)) {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// WithLabel returns the games whose dim field carries label as a whole
// token. It fails with ErrUnknownLabel when no game carries it; an empty
// label is an ErrInvalidParams.
func WithLabel(games []*models.Game, dim models.Dimension, label string) ([]*models.Game, error) {
	focal := labels.Token(label)
	if focal == "" {
		return nil, paramErr("label", "label must not be empty")
	}
	out := make([]*models.Game, 0)
	for _, g := range games {
		if g == nil {
			continue
		}
		if labels.Has(g.LabelField(dim), focal) {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, &ParamError{
			Field:       "label",
			Reason:      "no game carries " + focal + " in " + string(dim),
			Suggestions: suggestLabels(focal, AllLabels(games, dim), 3),
			Err:         ErrUnknownLabel,
		}
	}
	return out, nil
}
