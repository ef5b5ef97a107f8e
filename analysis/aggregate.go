package analysis

import (
	"sort"

	"github.com/caawww/data-vis/models"
)

// ============================================================================
// GROUPED REDUCTION: one primitive for every "group by label" in the engine
// ============================================================================
// Null policy: a value that is absent on a game (Metric returns false) is
// skipped for that MetricSpec only. A reduction over zero values is 0.
// Threshold policy: groups with fewer rows than minSize are dropped.
// Ordering: count descending, then label ascending.
// ============================================================================

// MetricSpec asks for one output column: Source reduced with Method,
// stored under Name.
type MetricSpec struct {
	Name   string
	Source models.Metric
	Method Method
}

// LabelGroup is one row of a grouped reduction.
type LabelGroup struct {
	Label  string
	Count  int
	Values map[string]float64
}

// GroupByLabel groups exploded rows by label and reduces every MetricSpec per group.
//
// Owner tiers are ordinal: for MetricOwnerTier any method other than count
// is computed as the arithmetic mean of the valid tier scores.
func GroupByLabel(rows []LabelRow, specs []MetricSpec, minSize int) []LabelGroup {
	if len(rows) == 0 {
		return nil
	}

	grouped := make(map[string][]*models.Game)
	order := make([]string, 0)
	for _, r := range rows {
		if _, exists := grouped[r.Label]; !exists {
			order = append(order, r.Label)
		}
		grouped[r.Label] = append(grouped[r.Label], r.Game)
	}

	groups := make([]LabelGroup, 0, len(order))
	for _, label := range order {
		members := grouped[label]
		if len(members) < minSize {
			continue
		}
		g := LabelGroup{
			Label:  label,
			Count:  len(members),
			Values: make(map[string]float64, len(specs)),
		}
		for _, spec := range specs {
			g.Values[spec.Name] = reduceMetric(members, spec)
		}
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})
	return groups
}

func reduceMetric(games []*models.Game, spec MetricSpec) float64 {
	values := make([]float64, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		if v, ok := g.Metric(spec.Source); ok {
			values = append(values, v)
		}
	}
	method := spec.Method
	if spec.Source == models.MetricOwnerTier && method != MethodCount {
		method = MethodMean
	}
	return Reduce(values, method)
}

// Reduce applies method to values. It returns 0 for an empty input or an
// unknown method and never mutates values.
func Reduce(values []float64, method Method) float64 {
	if len(values) == 0 {
		return 0
	}
	switch method {
	case MethodSum:
		return sum(values)
	case MethodMean:
		return sum(values) / float64(len(values))
	case MethodMedian:
		return median(values)
	case MethodCount:
		return float64(len(values))
	default:
		return 0
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// median sorts a copy; odd counts take the middle value, even counts the
// mean of the two middle values.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// ============================================================================
// LABEL STATS: the overview table built on GroupByLabel
// ============================================================================

const (
	colDemand      = "demand"
	colPositive    = "positive"
	colNegative    = "negative"
	colReviewRatio = "review_ratio"
	colPlaytime    = "playtime"
	colPeakCCU     = "peak_ccu"
)

// statsSpecs is the column set of a LabelStats table for p.
func statsSpecs(p Params) []MetricSpec {
	return []MetricSpec{
		{Name: colDemand, Source: p.Demand.Source(), Method: p.Method},
		{Name: colPositive, Source: models.MetricPositive, Method: MethodSum},
		{Name: colNegative, Source: models.MetricNegative, Method: MethodSum},
		{Name: colReviewRatio, Source: models.MetricReviewRatio, Method: MethodMean},
		{Name: colPlaytime, Source: models.MetricAvgPlaytime, Method: p.Method},
		{Name: colPeakCCU, Source: models.MetricPeakCCU, Method: p.Method},
	}
}

// LabelStatsFrom aggregates already exploded (and filtered) rows into
// LabelStats. TotalCount is left at 0; see WithTotals.
func LabelStatsFrom(rows []LabelRow, p Params) []models.LabelStats {
	groups := GroupByLabel(rows, statsSpecs(p), p.MinGamesPerLabel)
	stats := make([]models.LabelStats, 0, len(groups))
	for _, g := range groups {
		pos, neg := g.Values[colPositive], g.Values[colNegative]
		s := models.LabelStats{
			Label:           g.Label,
			GameCount:       g.Count,
			Demand:          g.Values[colDemand],
			PositiveReviews: pos,
			NegativeReviews: neg,
			TotalReviews:    pos + neg,
			AvgReviewRatio:  g.Values[colReviewRatio],
			Playtime:        g.Values[colPlaytime],
			PeakCCU:         g.Values[colPeakCCU],
		}
		if s.TotalReviews > 0 {
			s.PooledReviewRatio = pos / s.TotalReviews
		}
		stats = append(stats, s)
	}
	return stats
}

// WithTotals returns a copy of stats whose TotalCount is the number of
// companion rows carrying each label; labels absent from companion get 0.
func WithTotals(stats []models.LabelStats, companion []LabelRow) []models.LabelStats {
	totals := make(map[string]int)
	for _, r := range companion {
		totals[r.Label]++
	}
	out := make([]models.LabelStats, len(stats))
	for i, s := range stats {
		s.TotalCount = totals[s.Label]
		out[i] = s
	}
	return out
}

// BuildLabelStats runs the overview pipeline: validate p, filter the catalog
// by years and low-data thresholds, explode p.Dimension, apply the label
// selection, aggregate, then join the unfiltered per-label totals.
//
// An empty result (nothing survives the filters) is returned as an empty
// slice with a nil error.
func BuildLabelStats(catalog []*models.Game, p Params) ([]models.LabelStats, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	filtered := FilterLowData(FilterYears(catalog, p.YearFrom, p.YearTo), p.MinReviews, p.MinPeakCCU)
	rows := SelectLabels(Explode(filtered, p.Dimension), p.Selected, p.Mode)
	stats := LabelStatsFrom(rows, p)
	return WithTotals(stats, Explode(catalog, p.Dimension)), nil
}
