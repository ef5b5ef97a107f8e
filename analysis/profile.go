package analysis

import (
	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

// ProfileMetrics are summarised by both mean and median in a LabelProfile.
var ProfileMetrics = []models.Metric{
	models.MetricReviewRatio,
	models.MetricPrice,
	models.MetricAchievements,
	models.MetricRequiredAge,
	models.MetricDLCCount,
}

// Profile summarises the games carrying label: counts, free-to-play games,
// active years and mean/median of ProfileMetrics. Playtime is reported as
// the average of the per-game mean and median playtimes, in minutes.
func Profile(subset []*models.Game, label string) models.LabelProfile {
	p := models.LabelProfile{
		Label:  labels.Token(label),
		Games:  len(subset),
		Mean:   make(map[models.Metric]float64, len(ProfileMetrics)),
		Median: make(map[models.Metric]float64, len(ProfileMetrics)),
	}

	for _, g := range subset {
		if g == nil {
			continue
		}
		if price, ok := g.Metric(models.MetricPrice); ok && price == 0 {
			p.FreeToPlay++
		}
		if g.ReleaseYear.Valid {
			y := int(g.ReleaseYear.Int64)
			if !p.HasYears || y < p.FirstYear {
				p.FirstYear = y
			}
			if !p.HasYears || y > p.LastYear {
				p.LastYear = y
			}
			p.HasYears = true
		}
	}

	for _, m := range ProfileMetrics {
		p.Mean[m] = reduceMetric(subset, MetricSpec{Source: m, Method: MethodMean})
		p.Median[m] = reduceMetric(subset, MetricSpec{Source: m, Method: MethodMedian})
	}
	p.AvgPlaytime = reduceMetric(subset, MetricSpec{Source: models.MetricAvgPlaytime, Method: MethodMean})
	p.MedianPlaytime = reduceMetric(subset, MetricSpec{Source: models.MetricMedianPlaytime, Method: MethodMean})
	return p
}
