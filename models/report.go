package models

import "time"

// OverviewReport holds the supply/demand analysis of one dimension over a
// filtered catalog.
type OverviewReport struct {
	RunID       string
	GeneratedAt time.Time

	Dimension   Dimension
	DemandTitle string
	Method      string

	TotalGames    int
	FilteredGames int
	YearFrom      int
	YearTo        int
	UniqueLabels  int

	Stats []LabelStats
	Gaps  []GapRecord

	TopSupply    []GapRecord
	TopDemand    []GapRecord
	OverSupplied []GapRecord
	UnderServed  []GapRecord
}

// FilteredShare is FilteredGames as a percentage of TotalGames.
func (r *OverviewReport) FilteredShare() float64 {
	if r.TotalGames == 0 {
		return 0
	}
	return float64(r.FilteredGames) / float64(r.TotalGames) * 100
}

// LabelReport is the drill-down view of a single label.
type LabelReport struct {
	RunID     string
	Dimension Dimension

	Profile  LabelProfile
	CoLabels []CoOccurrenceRecord

	// YearsLabel and YearsAll are independent timelines; they may cover
	// different years.
	YearsLabel []YearBucket
	YearsAll   []YearBucket

	// Games carrying the label, highest peak CCU first.
	Games []*Game
}

// IntersectionReport counts games per exact combination of labels.
type IntersectionReport struct {
	RunID     string
	Dimension Dimension
	Focal     string

	Labels      []string
	LabelTotals []int
	Combos      []Intersection

	Items        int
	MinItems     int
	Insufficient bool

	// NoCoLabels marks a single-label request whose games carry no other
	// label; only the focal total is filled in.
	NoCoLabels bool
}
