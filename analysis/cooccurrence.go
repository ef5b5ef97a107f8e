package analysis

import (
	"sort"

	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

// CoOccurrenceTable lists the co-labels of a focal label, most frequent first.
type CoOccurrenceTable struct {
	Focal   string
	Records []models.CoOccurrenceRecord
}

// Empty reports that no co-label was found.
func (t CoOccurrenceTable) Empty() bool { return len(t.Records) == 0 }

// Head returns at most n records.
func (t CoOccurrenceTable) Head(n int) []models.CoOccurrenceRecord {
	if n < 0 || n >= len(t.Records) {
		return t.Records
	}
	return t.Records[:n]
}

// CoOccurrences counts, over subset, how many games carry each label of dim
// besides focal, and averages review ratio, price and peak CCU over exactly
// those games. Membership is decided on normalized token sets, so a focal
// "Rpg" never matches a game that only carries "Rpg Maker".
//
// subset is expected to be the games carrying focal (see WithLabel); games
// that don't still only contribute their other labels. Each game counts at
// most once per co-label. Ties in count keep discovery order.
func CoOccurrences(subset []*models.Game, dim models.Dimension, focal string) (CoOccurrenceTable, error) {
	focal = labels.Token(focal)
	if focal == "" {
		return CoOccurrenceTable{}, paramErr("focal label", "label must not be empty")
	}

	members := make(map[string][]*models.Game)
	order := make([]string, 0)
	for _, g := range subset {
		if g == nil {
			continue
		}
		for _, t := range labels.Distinct(g.LabelField(dim)) {
			if t == focal {
				continue
			}
			if _, seen := members[t]; !seen {
				order = append(order, t)
			}
			members[t] = append(members[t], g)
		}
	}

	table := CoOccurrenceTable{Focal: focal}
	if len(order) == 0 {
		return table, nil
	}

	table.Records = make([]models.CoOccurrenceRecord, 0, len(order))
	for _, label := range order {
		games := members[label]
		table.Records = append(table.Records, models.CoOccurrenceRecord{
			Label:          label,
			Games:          len(games),
			AvgReviewRatio: reduceMetric(games, MetricSpec{Source: models.MetricReviewRatio, Method: MethodMean}),
			AvgPrice:       reduceMetric(games, MetricSpec{Source: models.MetricPrice, Method: MethodMean}),
			AvgPeakCCU:     reduceMetric(games, MetricSpec{Source: models.MetricPeakCCU, Method: MethodMean}),
		})
	}
	sort.SliceStable(table.Records, func(i, j int) bool {
		return table.Records[i].Games > table.Records[j].Games
	})
	return table, nil
}
