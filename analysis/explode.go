// Package analysis is the label aggregation and ranking engine.
//
// Every function here is a pure transform: it reads the games it is given,
// never writes through the *models.Game pointers, and returns freshly
// allocated results. Filters return views (new slices sharing the same
// read-only games); aggregations return new tables. Identical inputs always
// produce identical outputs.
package analysis

import (
	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

// LabelRow is one (game, label) observation produced by Explode.
// Game is shared with the input catalog and must be treated as read-only.
type LabelRow struct {
	Label string
	Game  *models.Game
}

// Explode emits one row per distinct normalized label of every game for
// dimension dim. Games without labels contribute no rows.
func Explode(games []*models.Game, dim models.Dimension) []LabelRow {
	rows := make([]LabelRow, 0, len(games)*2)
	for _, g := range games {
		if g == nil {
			continue
		}
		for _, label := range labels.Distinct(g.LabelField(dim)) {
			rows = append(rows, LabelRow{Label: label, Game: g})
		}
	}
	return rows
}
