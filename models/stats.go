package models

// LabelStats is the aggregated view of one label within a filtered catalog.
type LabelStats struct {
	Label     string
	GameCount int
	// TotalCount is the number of games carrying the label in the
	// unfiltered catalog; 0 when no companion catalog was supplied.
	TotalCount int

	// Demand is the chosen user-attention metric under the chosen method.
	Demand float64

	PositiveReviews float64
	NegativeReviews float64
	TotalReviews    float64
	// AvgReviewRatio is the mean of per-game review ratios.
	AvgReviewRatio float64
	// PooledReviewRatio is sum(positive) / sum(positive+negative).
	PooledReviewRatio float64

	Playtime float64
	PeakCCU  float64
}

// GapRecord compares developer supply against user demand for one label.
type GapRecord struct {
	Label      string
	Supply     float64
	Demand     float64
	SupplyRank int
	DemandRank int
	// Gap > 0 means over-supplied, Gap < 0 under-served.
	Gap        int
	BubbleSize float64
}

// CoOccurrenceRecord describes a co-label seen alongside a focal label.
type CoOccurrenceRecord struct {
	Label          string
	Games          int
	AvgReviewRatio float64
	AvgPrice       float64
	AvgPeakCCU     float64
}

// YearBucket holds per-release-year aggregates.
type YearBucket struct {
	Year  int
	Games int
	Means map[Metric]float64
}

// LabelProfile summarises the games carrying one label.
type LabelProfile struct {
	Label          string
	Games          int
	FreeToPlay     int
	FirstYear      int
	LastYear       int
	HasYears       bool
	Mean           map[Metric]float64
	Median         map[Metric]float64
	AvgPlaytime    float64
	MedianPlaytime float64
}

// Intersection is the number of games carrying exactly Labels among the
// labels of a membership matrix.
type Intersection struct {
	Labels []string
	Games  int
}
