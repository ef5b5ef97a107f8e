package analysis

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestLabels returns up to n known labels closest to label by edit
// distance on their lowercase forms. Candidates further than half the
// label's length away are not suggested.
func suggestLabels(label string, known []string, n int) []string {
	target := strings.ToLower(label)
	limit := len([]rune(target))/2 + 1

	type candidate struct {
		label    string
		distance int
	}
	var candidates []candidate
	for _, k := range known {
		d := levenshtein.ComputeDistance(target, strings.ToLower(k))
		if d <= limit {
			candidates = append(candidates, candidate{label: k, distance: d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].label < candidates[j].label
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.label
	}
	return out
}
