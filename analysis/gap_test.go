package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caawww/data-vis/models"
)

func TestCompetitionRank(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{name: "empty", values: nil, want: []int{}},
		{name: "ties share the smallest rank", values: []float64{10, 10, 5}, want: []int{1, 1, 3}},
		{name: "unsorted input", values: []float64{1, 9, 9}, want: []int{3, 1, 1}},
		{name: "all equal", values: []float64{4, 4, 4}, want: []int{1, 1, 1}},
		{name: "distinct", values: []float64{2, 7, 5, 1}, want: []int{3, 1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompetitionRank(tt.values))
		})
	}
}

func gapStats() []models.LabelStats {
	return []models.LabelStats{
		{Label: "A", GameCount: 10, Demand: 1},
		{Label: "B", GameCount: 5, Demand: 9},
		{Label: "C", GameCount: 5, Demand: 9},
	}
}

func TestAnalyzeGaps(t *testing.T) {
	records := AnalyzeGaps(gapStats())
	require.Len(t, records, 3)

	want := []struct {
		label              string
		supplyRank, demand int
		gap                int
	}{
		{"A", 1, 3, -2},
		{"B", 2, 1, 1},
		{"C", 2, 1, 1},
	}
	for i, w := range want {
		r := records[i]
		assert.Equal(t, w.label, r.Label)
		assert.Equal(t, w.supplyRank, r.SupplyRank, "supply rank of %s", w.label)
		assert.Equal(t, w.demand, r.DemandRank, "demand rank of %s", w.label)
		assert.Equal(t, w.gap, r.Gap, "gap of %s", w.label)
		assert.Equal(t, r.SupplyRank-r.DemandRank, r.Gap)
	}
	assert.InDelta(t, math.Sqrt(10), records[0].BubbleSize, 1e-9)
	assert.InDelta(t, math.Sqrt(45), records[1].BubbleSize, 1e-9)
}

func TestAnalyzeGapsClampsNegativeBubble(t *testing.T) {
	records := AnalyzeGaps([]models.LabelStats{{Label: "A", GameCount: 3, Demand: -4}})
	require.Len(t, records, 1)
	assert.Equal(t, 0.0, records[0].BubbleSize)
}

func TestAnalyzeGapsEmpty(t *testing.T) {
	assert.Empty(t, AnalyzeGaps(nil))
}

func TestTopK(t *testing.T) {
	records := AnalyzeGaps(gapStats())
	before := append([]models.GapRecord(nil), records...)

	over := OverSupplied(records, 1)
	require.Len(t, over, 1)
	assert.Equal(t, "B", over[0].Label)

	under := UnderServed(records, 1)
	require.Len(t, under, 1)
	assert.Equal(t, "A", under[0].Label)

	supply := TopBySupply(records, 2)
	require.Len(t, supply, 2)
	assert.Equal(t, "A", supply[0].Label)
	assert.Equal(t, "B", supply[1].Label)

	demand := TopByDemand(records, 10)
	require.Len(t, demand, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{demand[0].Label, demand[1].Label, demand[2].Label})

	assert.Empty(t, TopByDemand(records, 0))
	assert.Equal(t, before, records, "top-k must not reorder its input")
}
