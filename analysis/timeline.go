package analysis

import (
	"sort"

	"github.com/caawww/data-vis/models"
)

// DefaultYearMetrics are the per-year means shown on a label timeline.
var DefaultYearMetrics = []models.Metric{models.MetricPeakCCU, models.MetricReviewRatio}

// YearTable holds per-year buckets in ascending year order. Years without
// games are absent; filling gaps is left to the consumer.
type YearTable struct {
	Buckets []models.YearBucket
}

// Empty reports that no game had a release year.
func (t YearTable) Empty() bool { return len(t.Buckets) == 0 }

// Years returns the bucket years in order.
func (t YearTable) Years() []int {
	years := make([]int, len(t.Buckets))
	for i, b := range t.Buckets {
		years[i] = b.Year
	}
	return years
}

// YearPair keeps a filtered timeline next to its unfiltered counterpart.
// The two tables are computed independently and may cover different years.
type YearPair struct {
	Filtered YearTable
	All      YearTable
}

// YearlyStats groups games by release year and computes the game count and
// the mean of each metric per year. Games without a year are skipped;
// absent metric values are excluded from that year's mean.
func YearlyStats(games []*models.Game, metrics []models.Metric) YearTable {
	byYear := make(map[int][]*models.Game)
	for _, g := range games {
		if g == nil || !g.ReleaseYear.Valid {
			continue
		}
		y := int(g.ReleaseYear.Int64)
		byYear[y] = append(byYear[y], g)
	}
	if len(byYear) == 0 {
		return YearTable{}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	buckets := make([]models.YearBucket, 0, len(years))
	for _, y := range years {
		members := byYear[y]
		b := models.YearBucket{
			Year:  y,
			Games: len(members),
			Means: make(map[models.Metric]float64, len(metrics)),
		}
		for _, m := range metrics {
			b.Means[m] = reduceMetric(members, MetricSpec{Source: m, Method: MethodMean})
		}
		buckets = append(buckets, b)
	}
	return YearTable{Buckets: buckets}
}

// YearlyComparison runs YearlyStats on filtered and on all, separately.
func YearlyComparison(filtered, all []*models.Game, metrics []models.Metric) YearPair {
	return YearPair{
		Filtered: YearlyStats(filtered, metrics),
		All:      YearlyStats(all, metrics),
	}
}
