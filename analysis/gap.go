package analysis

import (
	"math"
	"sort"

	"github.com/caawww/data-vis/models"
)

// CompetitionRank ranks values in descending order. Tied values share the
// smallest rank of their tie group and the next distinct value skips ahead:
// [10, 10, 5] ranks as [1, 1, 3]. The result is index-aligned with values.
func CompetitionRank(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}

// AnalyzeGaps ranks supply (game count) and demand independently and
// derives the gap and bubble size per label. Records keep the order of
// stats.
func AnalyzeGaps(stats []models.LabelStats) []models.GapRecord {
	if len(stats) == 0 {
		return nil
	}
	supply := make([]float64, len(stats))
	demand := make([]float64, len(stats))
	for i, s := range stats {
		supply[i] = float64(s.GameCount)
		demand[i] = s.Demand
	}
	return gapRecords(stats, supply, demand)
}

func gapRecords(stats []models.LabelStats, supply, demand []float64) []models.GapRecord {
	supplyRank := CompetitionRank(supply)
	demandRank := CompetitionRank(demand)

	records := make([]models.GapRecord, len(stats))
	for i, s := range stats {
		records[i] = models.GapRecord{
			Label:      s.Label,
			Supply:     supply[i],
			Demand:     demand[i],
			SupplyRank: supplyRank[i],
			DemandRank: demandRank[i],
			Gap:        supplyRank[i] - demandRank[i],
			BubbleSize: math.Sqrt(math.Max(supply[i], 0) * math.Max(demand[i], 0)),
		}
	}
	return records
}

// ============================================================================
// TOP-K: ranking tables select by value, never by rank
// ============================================================================

// TopBySupply returns the k records with the largest supply.
func TopBySupply(records []models.GapRecord, k int) []models.GapRecord {
	return topK(records, k, func(a, b models.GapRecord) bool { return a.Supply > b.Supply })
}

// TopByDemand returns the k records with the largest demand.
func TopByDemand(records []models.GapRecord, k int) []models.GapRecord {
	return topK(records, k, func(a, b models.GapRecord) bool { return a.Demand > b.Demand })
}

// OverSupplied returns the k records with the largest gap.
func OverSupplied(records []models.GapRecord, k int) []models.GapRecord {
	return topK(records, k, func(a, b models.GapRecord) bool { return a.Gap > b.Gap })
}

// UnderServed returns the k records with the smallest gap.
func UnderServed(records []models.GapRecord, k int) []models.GapRecord {
	return topK(records, k, func(a, b models.GapRecord) bool { return a.Gap < b.Gap })
}

// topK sorts a copy stably with less and keeps at most k entries.
func topK(records []models.GapRecord, k int, less func(a, b models.GapRecord) bool) []models.GapRecord {
	sorted := make([]models.GapRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if k >= 0 && len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
