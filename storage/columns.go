package storage

import "github.com/caawww/data-vis/models"

// CSV header names of the Steam games export.
const (
	colAppID           = "AppID"
	colName            = "Name"
	colReleaseDate     = "Release date"
	colEstimatedOwners = "Estimated owners"
	colPeakCCU         = "Peak CCU"
	colRequiredAge     = "Required age"
	colPrice           = "Price"
	colDLCCount        = "DLC count"
	colPositive        = "Positive"
	colNegative        = "Negative"
	colAchievements    = "Achievements"
	colAvgPlaytime     = "Average playtime forever"
	colMedianPlaytime  = "Median playtime forever"
	colCategories      = "Categories"
	colGenres          = "Genres"
	colTags            = "Tags"
)

// catalogColumns is the column order written by CSVWriter.
var catalogColumns = []string{
	colAppID, colName, colReleaseDate, colEstimatedOwners, colPeakCCU,
	colRequiredAge, colPrice, colDLCCount, colPositive, colNegative,
	colAchievements, colAvgPlaytime, colMedianPlaytime,
	colCategories, colGenres, colTags,
}

// rawField returns a pointer to the RawGame field behind a CSV column, or
// nil for columns the catalog does not use.
func rawField(r *models.RawGame, column string) *string {
	switch column {
	case colAppID:
		return &r.AppID
	case colName:
		return &r.Name
	case colReleaseDate:
		return &r.ReleaseDate
	case colEstimatedOwners:
		return &r.EstimatedOwners
	case colPeakCCU:
		return &r.PeakCCU
	case colRequiredAge:
		return &r.RequiredAge
	case colPrice:
		return &r.Price
	case colDLCCount:
		return &r.DLCCount
	case colPositive:
		return &r.Positive
	case colNegative:
		return &r.Negative
	case colAchievements:
		return &r.Achievements
	case colAvgPlaytime:
		return &r.AvgPlaytime
	case colMedianPlaytime:
		return &r.MedianPlaytime
	case colCategories:
		return &r.Categories
	case colGenres:
		return &r.Genres
	case colTags:
		return &r.Tags
	default:
		return nil
	}
}
