package models

import (
	"database/sql"
	"time"
)

// RawGame holds one catalog row exactly as read from the CSV export.
// Every field is still text; the Cleaner turns it into a Game.
type RawGame struct {
	AppID           string
	Name            string
	ReleaseDate     string
	EstimatedOwners string
	PeakCCU         string
	RequiredAge     string
	Price           string
	DLCCount        string
	Positive        string
	Negative        string
	Achievements    string
	AvgPlaytime     string
	MedianPlaytime  string
	Categories      string
	Genres          string
	Tags            string
}

// Game is the cleaned catalog entry consumed by the analysis engine.
//
// Numeric metrics are nullable: a metric that was missing or failed numeric
// coercion (and had no default applied upstream) is stored with Valid=false
// and is excluded from every aggregate.
type Game struct {
	AppID       int64
	Name        string
	ReleaseYear sql.NullInt64

	Positive       sql.NullFloat64
	Negative       sql.NullFloat64
	PeakCCU        sql.NullFloat64
	Price          sql.NullFloat64
	AvgPlaytime    sql.NullFloat64
	MedianPlaytime sql.NullFloat64
	Achievements   sql.NullFloat64
	RequiredAge    sql.NullFloat64
	DLCCount       sql.NullFloat64

	EstimatedOwners string

	Categories string
	Genres     string
	Tags       string

	// Derived once at load time.
	TotalReviews float64
	ReviewRatio  float64
	OwnerTier    sql.NullInt64

	CreatedAt time.Time
}

// Num returns a valid nullable float. Handy for fixtures and defaults.
func Num(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// Year returns a valid nullable release year.
func Year(y int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(y), Valid: true}
}

// Metric identifies a numeric field of a Game.
type Metric string

const (
	MetricPositive       Metric = "positive"
	MetricNegative       Metric = "negative"
	MetricPeakCCU        Metric = "peak_ccu"
	MetricPrice          Metric = "price"
	MetricAvgPlaytime    Metric = "avg_playtime"
	MetricMedianPlaytime Metric = "median_playtime"
	MetricAchievements   Metric = "achievements"
	MetricRequiredAge    Metric = "required_age"
	MetricDLCCount       Metric = "dlc_count"
	MetricTotalReviews   Metric = "total_reviews"
	MetricReviewRatio    Metric = "review_ratio"
	MetricOwnerTier      Metric = "owner_tier"
)

// Metric returns the value of m for this game and whether it is present.
// Derived metrics (total reviews, review ratio) are always present.
func (g *Game) Metric(m Metric) (float64, bool) {
	switch m {
	case MetricPositive:
		return nullable(g.Positive)
	case MetricNegative:
		return nullable(g.Negative)
	case MetricPeakCCU:
		return nullable(g.PeakCCU)
	case MetricPrice:
		return nullable(g.Price)
	case MetricAvgPlaytime:
		return nullable(g.AvgPlaytime)
	case MetricMedianPlaytime:
		return nullable(g.MedianPlaytime)
	case MetricAchievements:
		return nullable(g.Achievements)
	case MetricRequiredAge:
		return nullable(g.RequiredAge)
	case MetricDLCCount:
		return nullable(g.DLCCount)
	case MetricTotalReviews:
		return g.TotalReviews, true
	case MetricReviewRatio:
		return g.ReviewRatio, true
	case MetricOwnerTier:
		if !g.OwnerTier.Valid {
			return 0, false
		}
		return float64(g.OwnerTier.Int64), true
	default:
		return 0, false
	}
}

func nullable(v sql.NullFloat64) (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	return v.Float64, true
}

// Dimension names a multi-valued label column.
type Dimension string

const (
	DimensionTags       Dimension = "Tags"
	DimensionGenres     Dimension = "Genres"
	DimensionCategories Dimension = "Categories"
)

// Dimensions lists every label dimension in display order.
var Dimensions = []Dimension{DimensionTags, DimensionGenres, DimensionCategories}

// LabelField returns the raw delimited label string for dimension d.
func (g *Game) LabelField(d Dimension) string {
	switch d {
	case DimensionTags:
		return g.Tags
	case DimensionGenres:
		return g.Genres
	case DimensionCategories:
		return g.Categories
	default:
		return ""
	}
}
